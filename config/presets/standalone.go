package presets

import (
	"time"

	"github.com/govsnap/govsnap/config"
)

func init() {
	register("standalone", standalone())
}

// standalone talks to a hub and a score API running on the local machine.
func standalone() config.Config {
	conf := config.Default()
	conf.Hub.URL = "http://localhost:3001"
	conf.Hub.MaxRetries = 0
	conf.Score.URL = "http://localhost:3003"
	conf.Score.RateLimit = 0
	conf.Score.BreakerTimeout = time.Second
	conf.Logging.Level = "debug"
	return conf
}
