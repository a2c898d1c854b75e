package presets

import (
	"time"

	"github.com/govsnap/govsnap/config"
)

func init() {
	register("testnet", testnet())
}

func testnet() config.Config {
	conf := config.Default()
	conf.Domain.ChainID = 11155111
	conf.Hub.URL = "https://testnet.seq.snapshot.org"
	conf.Score.CacheSize = 10_000
	conf.Router.SignTimeout = 5 * time.Minute
	return conf
}
