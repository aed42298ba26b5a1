// Package csvimport lee archivos de carga masiva "color,algodón,cantidad" y entrega filas crudas
// al caso de uso. La validación de cada fila la hace el caso de uso.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/socks-api/internal/application/socks"
)

// ErrUnknownCharset juego de caracteres no soportado.
var ErrUnknownCharset = errors.New("csvimport: juego de caracteres no soportado")

// Options formato del archivo.
type Options struct {
	Delimiter  rune   // ',' si es 0
	Charset    string // utf-8 (por defecto), windows-1251, windows-1252, iso-8859-1
	SkipHeader bool   // descarta la primera fila
}

// Reader implementa socks.RowReader sobre encoding/csv.
type Reader struct {
	csv        *csv.Reader
	skipHeader bool
}

var _ socks.RowReader = (*Reader)(nil)

// NewReader construye el lector decodificando r desde el charset indicado a UTF-8.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	dec, err := lookupCharset(opts.Charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.Comma = ','
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1 // el número de campos lo valida el caso de uso
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr, skipHeader: opts.SkipHeader}, nil
}

// Read devuelve la siguiente fila no vacía; io.EOF al terminar.
// Un error de sintaxis CSV se devuelve con la línea donde ocurrió.
func (r *Reader) Read() (socks.RawRow, error) {
	for {
		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return socks.RawRow{}, io.EOF
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return socks.RawRow{}, fmt.Errorf("csv línea %d: %w", perr.Line, perr.Err)
			}
			return socks.RawRow{}, fmt.Errorf("leer csv: %w", err)
		}
		if r.skipHeader {
			r.skipHeader = false
			continue
		}
		if blank(record) {
			continue
		}
		line, _ := r.csv.FieldPos(0)
		return socks.RawRow{Number: line, Fields: record}, nil
	}
}

// blank reconoce una línea solo con espacios. Una fila con delimitadores pero campos vacíos
// no es blanca: llega al caso de uso y se rechaza como fila inválida.
func blank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}

// lookupCharset devuelve el decodificador a UTF-8. Un BOM inicial decide la codificación si existe.
func lookupCharset(name string) (transform.Transformer, error) {
	var fallback transform.Transformer
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		fallback = transform.Nop
	case "windows-1251", "cp1251":
		fallback = charmap.Windows1251.NewDecoder()
	case "windows-1252", "cp1252":
		fallback = charmap.Windows1252.NewDecoder()
	case "iso-8859-1", "latin1", "latin-1":
		fallback = charmap.ISO8859_1.NewDecoder()
	}
	if fallback != nil {
		return unicode.BOMOverride(fallback), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}
