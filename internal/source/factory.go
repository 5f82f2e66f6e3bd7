package source

import (
	"fmt"

	"photovault/internal/config"
	"photovault/internal/pv"
)

// NewSourceFromConfig creates the configured photo source. Type "none"
// returns a nil source and no error.
func NewSourceFromConfig(cfg config.SourceConfig, idgen pv.IDGenerator, logger pv.Logger) (*DirSource, error) {
	switch cfg.Type {
	case "none", "":
		return nil, nil
	case "directory":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("directory source requires dir to be set")
		}
		return NewDirSource(cfg.Dir, Options{
			Recursive:     cfg.Recursive,
			ConfirmDelete: cfg.ConfirmDelete,
			Ignore:        cfg.Ignore,
		}, idgen, logger)
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}
