package handlers

import (
	"net/http"
	"os"

	"github.com/spf13/afero"
)

// ChartFileSystem serves the files of dir from fs. Directories are reported
// as missing so the chart folder cannot be listed.
func ChartFileSystem(fs afero.Fs, dir string) http.FileSystem {
	return filesOnly{afero.NewHttpFs(fs).Dir(dir)}
}

type filesOnly struct {
	http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
