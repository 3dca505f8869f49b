package main

import (
	"os"
	"path/filepath"

	"faststack/internal/logx"
	"faststack/internal/storage"
)

// defaultDBDir returns "<cwd>/faststack-data", created on demand, mirroring
// the teacher's own habit of keeping runtime state next to the binary's
// working directory rather than under a platform config dir.
func defaultDBDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(wd, "faststack-data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func openStore(dbPath string) (*storage.Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBDir()
		if err != nil {
			return nil, err
		}
	}
	return storage.Open(dbPath)
}

// newLogger builds a logx.Logger with every component enabled at Debug
// level when enabled is true, or a fully disabled logger otherwise —
// mirroring the teacher main.go's "-log" flag behavior of enabling every
// component at once.
func newLogger(enabled bool) *logx.Logger {
	log := logx.New(10000)
	if !enabled {
		return log
	}
	for _, c := range []logx.Component{
		logx.ComponentEngine, logx.ComponentRandomizer, logx.ComponentRotation,
		logx.ComponentReplay, logx.ComponentStorage, logx.ComponentFrontend,
	} {
		log.SetComponentEnabled(c, true)
	}
	log.SetMinLevel(logx.LevelDebug)
	return log
}
