// Package source loads single columns out of parquet files, local or
// remote, into the vector types consumed by the reduction packages.
// Remote files are read over HTTP range requests so only the pages of
// the requested column are fetched.
package source

import (
	"io"
	"net/url"
	"os"

	"github.com/gravitational/trace"
	"github.com/parquet-go/parquet-go"
	"github.com/sirupsen/logrus"
	"howett.net/ranger"

	"vecstats/vector"
)

// ColumnSource wraps an open parquet file and hands out columns as
// vectors. Parquet nulls become missing-mask bits.
type ColumnSource struct {
	path   string
	file   *parquet.File
	closer io.Closer
	log    *logrus.Entry
}

// Open opens a parquet file by local path or http(s) URL.
func Open(path string) (*ColumnSource, error) {
	if isHTTPURL(path) {
		return openHTTP(path)
	}
	return openLocal(path)
}

func isHTTPURL(path string) bool {
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func openLocal(path string) (*ColumnSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, trace.Wrap(err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, trace.Wrap(err, "opening parquet file %v", path)
	}
	return &ColumnSource{
		path:   path,
		file:   pf,
		closer: f,
		log:    logrus.WithField("source", path),
	}, nil
}

func openHTTP(rawURL string) (*ColumnSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	reader, err := ranger.NewReader(&ranger.HTTPRanger{URL: u})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	length, err := reader.Length()
	if err != nil {
		return nil, trace.Wrap(err, "probing content length of %v", rawURL)
	}
	pf, err := parquet.OpenFile(reader, length)
	if err != nil {
		return nil, trace.Wrap(err, "opening remote parquet file %v", rawURL)
	}
	return &ColumnSource{
		path: rawURL,
		file: pf,
		log:  logrus.WithField("source", rawURL),
	}, nil
}

// Close releases the underlying file. Remote sources hold no resources
// beyond the HTTP client and close to a no-op.
func (s *ColumnSource) Close() error {
	if s.closer != nil {
		return trace.Wrap(s.closer.Close())
	}
	return nil
}

// RowCount returns the total number of rows across all row groups.
func (s *ColumnSource) RowCount() int64 {
	return s.file.NumRows()
}

// ColumnNames lists the top-level column names in schema order.
func (s *ColumnSource) ColumnNames() []string {
	fields := s.file.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return names
}

func (s *ColumnSource) columnIndex(name string) (int, error) {
	for i, f := range s.file.Schema().Fields() {
		if f.Name() == name {
			return i, nil
		}
	}
	return 0, trace.NotFound("column %q not found in %v", name, s.path)
}

// readColumn walks every page of the named column across all row groups,
// invoking visit once per value in row order. Null values arrive with
// IsNull set.
func (s *ColumnSource) readColumn(name string, visit func(parquet.Value)) error {
	index, err := s.columnIndex(name)
	if err != nil {
		return trace.Wrap(err)
	}
	for _, rowGroup := range s.file.RowGroups() {
		pages := rowGroup.ColumnChunks()[index].Pages()
		for {
			page, err := pages.ReadPage()
			if err == io.EOF {
				break
			}
			if err != nil {
				pages.Close()
				return trace.Wrap(err, "reading column %q", name)
			}
			values := make([]parquet.Value, page.NumValues())
			reader := page.Values()
			for off := 0; off < len(values); {
				n, err := reader.ReadValues(values[off:])
				off += n
				if err == io.EOF {
					values = values[:off]
					break
				}
				if err != nil {
					pages.Close()
					return trace.Wrap(err, "reading column %q", name)
				}
			}
			for _, v := range values {
				visit(v)
			}
		}
		if err := pages.Close(); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

// Float64Column loads the named column as a float64 vector. Integer and
// float32 physical types are widened to float64; nulls become missing.
func (s *ColumnSource) Float64Column(name string) (*vector.Float64Vector, error) {
	values := make([]float64, 0, s.RowCount())
	missing := make([]bool, 0, s.RowCount())
	var badKind parquet.Kind
	bad := false

	err := s.readColumn(name, func(v parquet.Value) {
		if v.IsNull() {
			values = append(values, 0)
			missing = append(missing, true)
			return
		}
		switch v.Kind() {
		case parquet.Double:
			values = append(values, v.Double())
		case parquet.Float:
			values = append(values, float64(v.Float()))
		case parquet.Int32:
			values = append(values, float64(v.Int32()))
		case parquet.Int64:
			values = append(values, float64(v.Int64()))
		default:
			bad, badKind = true, v.Kind()
			return
		}
		missing = append(missing, false)
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if bad {
		return nil, trace.BadParameter(
			"column %q has non-numeric physical type %v", name, badKind)
	}

	s.log.WithFields(logrus.Fields{
		"column": name,
		"rows":   len(values),
	}).Debug("Loaded float64 column.")
	out, err := vector.NewFloat64VectorWithMask(values, missing)
	return out, trace.Wrap(err)
}

// Int64Column loads the named column as an int64 vector. Nulls become
// missing-mask bits over a zero payload.
func (s *ColumnSource) Int64Column(name string) (*vector.Int64Vector, error) {
	values := make([]int64, 0, s.RowCount())
	missing := make([]bool, 0, s.RowCount())
	var badKind parquet.Kind
	bad := false

	err := s.readColumn(name, func(v parquet.Value) {
		if v.IsNull() {
			values = append(values, 0)
			missing = append(missing, true)
			return
		}
		switch v.Kind() {
		case parquet.Int32:
			values = append(values, int64(v.Int32()))
			missing = append(missing, false)
		case parquet.Int64:
			values = append(values, v.Int64())
			missing = append(missing, false)
		default:
			bad, badKind = true, v.Kind()
		}
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if bad {
		return nil, trace.BadParameter(
			"column %q has non-integer physical type %v", name, badKind)
	}

	out := vector.NewInt64Vector(values)
	for i, m := range missing {
		if m {
			out.Missing.SetMissing(i)
		}
	}
	return out, nil
}

// StringColumn loads the named column as a string slice. Nulls become
// empty strings.
func (s *ColumnSource) StringColumn(name string) ([]string, error) {
	values := make([]string, 0, s.RowCount())
	var badKind parquet.Kind
	bad := false

	err := s.readColumn(name, func(v parquet.Value) {
		if v.IsNull() {
			values = append(values, "")
			return
		}
		if v.Kind() != parquet.ByteArray {
			bad, badKind = true, v.Kind()
			return
		}
		values = append(values, string(v.ByteArray()))
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if bad {
		return nil, trace.BadParameter(
			"column %q has non-string physical type %v", name, badKind)
	}
	return values, nil
}
