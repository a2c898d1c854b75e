// Package tally turns the raw votes of a proposal into per-choice results.
//
// Every vote is weighted by its voter's balance, the sum of the voter's strategy scores at
// the proposal snapshot. How a balance is spread over choices depends on the proposal's
// voting method, see shares.
package tally

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/govsnap/govsnap/common/types"
	"github.com/govsnap/govsnap/score"
)

//go:generate mockgen -typed -package=tally -destination=mocks.go -source=./tabulator.go

// Scorer returns one address to score map per strategy.
type Scorer interface {
	Scores(ctx context.Context, req score.Request) (types.StrategyScores, error)
}

var _ Scorer = (*score.Client)(nil)

// RankedChoice selects the ranked-choice counting rule.
type RankedChoice string

const (
	// Borda credits every ranked choice with a share decreasing linearly with its rank.
	Borda RankedChoice = "borda"
	// InstantRunoff eliminates the weakest choice until one holds a strict majority.
	InstantRunoff RankedChoice = "instant-runoff"
)

type Config struct {
	RankedChoice RankedChoice `mapstructure:"ranked-choice"`
	Concurrency  int          `mapstructure:"concurrency"`
}

func DefaultConfig() Config {
	return Config{
		RankedChoice: Borda,
		Concurrency:  4,
	}
}

type Opt func(*Tabulator)

func WithLogger(logger *zap.Logger) Opt {
	return func(t *Tabulator) {
		t.logger = logger
	}
}

func WithRankedChoice(rule RankedChoice) Opt {
	return func(t *Tabulator) {
		t.ranked = rule
	}
}

func WithConcurrency(n int) Opt {
	return func(t *Tabulator) {
		t.concurrency = n
	}
}

func WithConfig(cfg Config) Opt {
	return func(t *Tabulator) {
		t.ranked = cfg.RankedChoice
		t.concurrency = cfg.Concurrency
	}
}

// Tabulator computes proposal results. It holds no state between calls and is safe for
// concurrent use.
type Tabulator struct {
	scorer      Scorer
	logger      *zap.Logger
	ranked      RankedChoice
	concurrency int
}

func New(scorer Scorer, opts ...Opt) *Tabulator {
	cfg := DefaultConfig()
	t := &Tabulator{
		scorer:      scorer,
		logger:      zap.NewNop(),
		ranked:      cfg.RankedChoice,
		concurrency: cfg.Concurrency,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Results of one proposal.
//
// For approval proposals a voter's full balance is credited to every approved choice, so the
// per-choice totals, and SumOfResultsBalance, may exceed the voting power that took part.
type Results struct {
	// ResultsByVoteBalance is nil when the results could not be computed.
	ResultsByVoteBalance []float64
	// ResultsByStrategyScore[choice][strategy] breaks ResultsByVoteBalance down per strategy.
	ResultsByStrategyScore [][]float64
	SumOfResultsBalance    float64
	ScoresByStrategy       []float64
	// Votes holds the counted votes, by balance descending.
	Votes   []types.ScoredVote
	Skipped int
	Err     error
}

// Computable reports whether the results hold data. A scorer failure yields results that are
// not computable, which is not the same as a proposal without votes.
func (r Results) Computable() bool {
	return r.ResultsByVoteBalance != nil
}

// Winner returns the index of the choice with the highest result, the lowest index on a tie,
// or -1 when no choice received anything.
func (r Results) Winner() int {
	winner := -1
	for i, v := range r.ResultsByVoteBalance {
		if v > 0 && (winner < 0 || v > r.ResultsByVoteBalance[winner]) {
			winner = i
		}
	}
	return winner
}

// QuorumReached reports whether the results reach the space quorum. A space without a quorum
// always reaches it.
func (r Results) QuorumReached(space *types.Space) bool {
	if !r.Computable() {
		return false
	}
	if space == nil || space.Voting.Quorum <= 0 {
		return true
	}
	return r.SumOfResultsBalance >= space.Voting.Quorum
}

// Tabulate computes the results of proposal from its votes. It never fails: a scorer failure
// is reported in Results.Err with no results, and a vote whose choice does not fit the voting
// method is skipped.
func (t *Tabulator) Tabulate(ctx context.Context, space *types.Space, proposal *types.Proposal, votes []types.Vote) Results {
	start := time.Now()
	logger := t.logger.With(zap.String("proposal", proposal.ID), zap.Stringer("type", proposal.Type))
	if !proposal.Type.Valid() {
		tabulations.WithLabelValues(proposal.Type.String(), outcomeInvalid).Inc()
		return Results{Err: fmt.Errorf("%w: %q", types.ErrUnknownVotingMethod, proposal.Type)}
	}

	strategies := proposal.StrategiesOr(space)
	var table types.StrategyScores
	if proposal.State != types.Pending && len(votes) > 0 {
		req := score.Request{
			Space:      proposal.Space,
			Network:    proposal.NetworkOr(space),
			Snapshot:   proposal.Snapshot,
			Strategies: strategies,
			Addresses:  voters(votes),
		}
		if req.Space == "" && space != nil {
			req.Space = space.ID
		}
		var err error
		table, err = t.scorer.Scores(ctx, req)
		if err != nil {
			logger.Warn("scores unavailable, results not computable", zap.Error(err))
			tabulations.WithLabelValues(proposal.Type.String(), outcomeUnavailable).Inc()
			if !errors.Is(err, score.ErrScorerUnavailable) {
				err = fmt.Errorf("%w: %w", score.ErrScorerUnavailable, err)
			}
			return Results{Err: err}
		}
		table = table.Normalize()
	}

	scored := scoreVotes(votes, table, len(strategies))
	res := Results{
		ResultsByVoteBalance:   make([]float64, len(proposal.Choices)),
		ResultsByStrategyScore: make([][]float64, len(proposal.Choices)),
		ScoresByStrategy:       make([]float64, len(strategies)),
		Votes:                  make([]types.ScoredVote, 0, len(scored)),
	}
	for i := range res.ResultsByStrategyScore {
		res.ResultsByStrategyScore[i] = make([]float64, len(strategies))
	}

	ballots := make([][]share, len(scored))
	for i := range scored {
		s, err := shares(proposal.Type, &scored[i].Vote, len(proposal.Choices))
		if err != nil {
			logger.Debug("skipping vote", zap.String("voter", scored[i].Voter), zap.Error(err))
			res.Skipped++
			continue
		}
		ballots[i] = s
	}
	if proposal.Type == types.RankedChoice && t.ranked == InstantRunoff {
		ballots = instantRunoff(scored, ballots, len(proposal.Choices))
	}

	for i, vote := range scored {
		if ballots[i] == nil {
			continue
		}
		res.Votes = append(res.Votes, vote)
		for _, s := range ballots[i] {
			res.ResultsByVoteBalance[s.choice] += vote.Balance * s.weight
			for j, sc := range vote.Scores {
				res.ResultsByStrategyScore[s.choice][j] += sc * s.weight
			}
		}
	}
	for i, v := range res.ResultsByVoteBalance {
		res.SumOfResultsBalance += v
		for j, sc := range res.ResultsByStrategyScore[i] {
			res.ScoresByStrategy[j] += sc
		}
	}

	skippedVotes.Add(float64(res.Skipped))
	tabulations.WithLabelValues(proposal.Type.String(), outcomeOK).Inc()
	tabulateDuration.Observe(time.Since(start).Seconds())
	logger.Debug("proposal tabulated",
		zap.Int("votes", len(res.Votes)),
		zap.Int("skipped", res.Skipped),
		zap.Float64("sum", res.SumOfResultsBalance),
	)
	return res
}

// Input is one proposal to tabulate with TabulateAll.
type Input struct {
	Proposal *types.Proposal
	Votes    []types.Vote
}

// TabulateAll tabulates proposals of one space in parallel. Results are in input order.
func (t *Tabulator) TabulateAll(ctx context.Context, space *types.Space, inputs []Input) []Results {
	out := make([]Results, len(inputs))
	var eg errgroup.Group
	if t.concurrency > 0 {
		eg.SetLimit(t.concurrency)
	}
	for i, in := range inputs {
		eg.Go(func() error {
			out[i] = t.Tabulate(ctx, space, in.Proposal, in.Votes)
			return nil
		})
	}
	eg.Wait()
	return out
}

// voters returns the distinct voter addresses in fetch order.
func voters(votes []types.Vote) []string {
	seen := make(map[string]struct{}, len(votes))
	out := make([]string, 0, len(votes))
	for _, v := range votes {
		key := strings.ToLower(v.Voter)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v.Voter)
	}
	return out
}

// scoreVotes attaches scores to votes, drops votes without voting power and sorts the rest by
// balance descending, keeping fetch order between equal balances.
func scoreVotes(votes []types.Vote, table types.StrategyScores, strategies int) []types.ScoredVote {
	scored := make([]types.ScoredVote, 0, len(votes))
	for _, v := range votes {
		sv := types.ScoredVote{Vote: v, Scores: make([]float64, strategies)}
		addr := strings.ToLower(v.Voter)
		for i := range sv.Scores {
			sv.Scores[i] = table.Score(i, addr)
			sv.Balance += sv.Scores[i]
		}
		if sv.Balance <= 0 {
			continue
		}
		scored = append(scored, sv)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Balance > scored[j].Balance
	})
	return scored
}
