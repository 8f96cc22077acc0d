package output

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/pkg/errors"
)

var reIndexSuffix = regexp.MustCompile(`\.(\d+)$`)

// FileWriter saves a response body to the local filesystem.
type FileWriter struct {
	fullPath string
	progress io.Writer
}

func NewFileWriter(url *url.URL, options *Options, progress io.Writer) *FileWriter {
	var fullPath string

	if options.OutputFile == "" {
		name := filepath.Base(url.Path)
		if name == "/" || name == "." {
			name = "index"
		}
		fullPath = fmt.Sprintf("./%s", name)
	} else {
		fullPath = options.OutputFile
	}

	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}

	return &FileWriter{
		fullPath: fullPath,
		progress: progress,
	}
}

func makeNonOverlappingFilename(path string) string {
	_, err := os.Stat(path)
	if err == nil {
		newPath := reIndexSuffix.ReplaceAllStringFunc(path, func(index string) string {
			i, err := strconv.Atoi(strings.TrimPrefix(index, "."))
			if err != nil {
				panic(err)
			}
			i++
			return fmt.Sprintf(".%d", i)
		})
		if path == newPath {
			path = fmt.Sprintf("%s.%d", path, 1)
		} else {
			path = newPath
		}
		path = makeNonOverlappingFilename(path)
	}
	return path
}

func (f *FileWriter) Download(resp *http.Response) error {
	file, err := os.Create(f.fullPath)
	if err != nil {
		return errors.Wrapf(err, "creating file '%s'", f.fullPath)
	}
	defer file.Close()

	contentLength := resp.ContentLength
	buf := make([]byte, 32*1024)
	var totalRead int64

	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return errors.Wrapf(werr, "writing file '%s'", f.fullPath)
			}
			totalRead += int64(n)
			f.printProgress(totalRead, contentLength)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading response body")
		}
	}

	fmt.Fprintf(f.progress, "\nDone. %s saved to %s\n", bytefmt.ByteSize(uint64(totalRead)), f.fullPath)
	return nil
}

func (f *FileWriter) printProgress(totalRead, contentLength int64) {
	if contentLength <= 0 {
		fmt.Fprintf(f.progress, "\rDownloading: %s", bytefmt.ByteSize(uint64(totalRead)))
		return
	}
	percentage := (totalRead * 100) / contentLength
	fmt.Fprintf(f.progress, "\rDownloading: %s / %s (%d%%)",
		bytefmt.ByteSize(uint64(totalRead)),
		bytefmt.ByteSize(uint64(contentLength)),
		percentage)
}

func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}
