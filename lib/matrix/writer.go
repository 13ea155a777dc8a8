//
// atactk: ATAC-seq toolkit
//
// Copyright 2015 Stephen Parker
//
// Licensed under Version 3 of the GPL or any later version
//

package matrix

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4"
)

type GenericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

// Writer buffers tab-separated output, compressing it according to the
// requested format, or to the path suffix when no format is given. The
// path "-" selects standard output.
type Writer struct {
	f   *os.File
	zw  GenericWriter
	buf *bufio.Writer
}

// Open creates the output file for path and wraps it in the compressor
// selected by zip: "gz", "lz4", "lz4hc" or "" for none. With an empty zip
// the suffixes .gz and .lz4 select their compressor.
func Open(path, zip string) (*Writer, error) {
	w := &Writer{}
	if path == "-" {
		w.f = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		w.f = f
	}
	if zip == "" {
		switch {
		case strings.HasSuffix(path, ".gz"):
			zip = "gz"
		case strings.HasSuffix(path, ".lz4"):
			zip = "lz4"
		}
	}
	switch zip {
	case "gz":
		w.zw = gzip.NewWriter(w.f)
	case "lz4":
		w.zw = lz4.NewWriter(w.f)
	case "lz4hc":
		lzWriter := lz4.NewWriter(w.f)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		w.zw = lzWriter
	case "":
	default:
		if w.f != os.Stdout {
			w.f.Close()
		}
		return nil, fmt.Errorf("Unknown compression format %q", zip)
	}
	if w.zw != nil {
		w.buf = bufio.NewWriter(w.zw)
	} else {
		w.buf = bufio.NewWriter(w.f)
	}
	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *Writer) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

// Close flushes buffered output, finishes the compression stream and
// closes the file. Standard output is flushed but left open.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.zw != nil {
		if err := w.zw.Close(); err != nil {
			return err
		}
	}
	if w.f == os.Stdout {
		return nil
	}
	return w.f.Close()
}
