package presets

import "github.com/govsnap/govsnap/config"

func init() {
	register("mainnet", config.Default())
}
