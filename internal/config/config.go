package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ConserveLee/pal-hunter/internal/constants"
)

// IslandSettings holds the user-tunable knobs for one island.
// No range validation is done here; the engine takes the values as-is.
type IslandSettings struct {
	Enabled           bool    `toml:"enabled"`
	Mode              int     `toml:"mode"` // 0 = fixed, 1 = patrol
	FixedIntervalSec  float64 `toml:"fixed_interval_sec"`
	PatrolIntervalSec float64 `toml:"patrol_interval_sec"`
}

// Settings is the on-disk configuration (capture.toml).
type Settings struct {
	Display   int            `toml:"display"`
	LogLevel  string         `toml:"log_level"`
	Sync      bool           `toml:"sync"`
	Partner   IslandSettings `toml:"partner"`
	Adventure IslandSettings `toml:"adventure"`
}

// Default returns the stock settings matching the built-in island profiles.
func Default() Settings {
	return Settings{
		Display:  0,
		LogLevel: "debug",
		Sync:     false,
		Partner: IslandSettings{
			Enabled:           true,
			Mode:              0,
			FixedIntervalSec:  constants.PartnerFixedIntervalSec,
			PatrolIntervalSec: constants.PartnerPatrolIntervalSec,
		},
		Adventure: IslandSettings{
			Enabled:           false,
			Mode:              0,
			FixedIntervalSec:  constants.AdventureFixedIntervalSec,
			PatrolIntervalSec: constants.AdventurePatrolIntervalSec,
		},
	}
}

// Load reads settings from path, falling back to defaults when the file
// does not exist. Unknown keys are ignored.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Default(), err
	}
	return s, nil
}

// Save writes settings back to path so UI tweaks survive restarts.
func Save(path string, s Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s)
}
