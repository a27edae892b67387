package util

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/golang/snappy"
)

func NewBufferReader(data []byte) BufferReader {
	reader := bytes.NewReader(data)
	return BufferReader{
		reader: reader,
	}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](reader BufferReader) T {
	var value T
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadArray[T any](reader BufferReader) Array[T] {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	value := NewArray[T](int(size))
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{
		buffer: &buffer,
	}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteArray[T any](writer BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length()))
	binary.Write(writer.buffer, binary.LittleEndian, value)
}

//*******************************************
// compressed component files
//*******************************************

// Writes the snappy compressed buffer to file.
func WriteBufferToFile(writer BufferWriter, file string) error {
	data := snappy.Encode(nil, writer.Bytes())
	return os.WriteFile(file, data, 0644)
}

// Reads and decompresses a file written by WriteBufferToFile.
func ReadBufferFromFile(file string) (BufferReader, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return BufferReader{}, err
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return BufferReader{}, fmt.Errorf("failed to decompress %s: %w", file, err)
	}
	return NewBufferReader(raw), nil
}

func WriteArrayToFile[T any](value Array[T], file string) error {
	writer := NewBufferWriter()
	WriteArray[T](writer, value)
	return WriteBufferToFile(writer, file)
}

func ReadArrayFromFile[T any](file string) (Array[T], error) {
	reader, err := ReadBufferFromFile(file)
	if err != nil {
		return nil, err
	}
	return ReadArray[T](reader), nil
}

//*******************************************
// json files
//*******************************************

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	_, err := os.Stat(file)
	if errors.Is(err, os.ErrNotExist) {
		return value, fmt.Errorf("file not found: %s", file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

//*******************************************
// csv files
//*******************************************

// Reads rows into structs using the "csv" field tags.
//
// Columns missing from the header keep the zero value, malformed rows are skipped.
func ReadCSV[T any](r io.Reader, delimiter rune) (List[T], error) {
	return ReadCSVAs[T](r, delimiter, nil)
}

// Same as ReadCSV, aliases maps field tags to the header names used in the file.
func ReadCSVAs[T any](r io.Reader, delimiter rune, aliases Dict[string, string]) (List[T], error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	name_row_mapping := NewDict[string, int](10)
	for i, name := range header {
		name_row_mapping[name] = i
	}
	for tag, name := range aliases {
		if row, ok := name_row_mapping[name]; ok {
			name_row_mapping[tag] = row
		}
	}

	var val T
	typ := reflect.TypeOf(val)
	fields := _CSVFields(typ, name_row_mapping)

	rows := NewList[T](100)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			continue
		}
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			index := field.A
			row := field.B
			kind := field.C
			if row >= len(record) {
				continue
			}
			value := record[row]
			if value == "" {
				continue
			}
			ParseFieldValue(t.Field(index), kind, value)
		}
		rows.Add(t.Interface().(T))
	}
	return rows, nil
}

func ReadCSVFromFile[T any](filename string, delimiter rune) (List[T], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV[T](file, delimiter)
}

// Writes structs as rows using the "csv" field tags as header.
func WriteCSV[T any](w io.Writer, rows []T, delimiter rune) error {
	var val T
	typ := reflect.TypeOf(val)
	header := NewList[string](typ.NumField())
	columns := NewList[int](typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("csv")
		if tag == "" {
			continue
		}
		header.Add(tag)
		columns.Add(i)
	}

	writer := csv.NewWriter(w)
	writer.Comma = delimiter
	if err := writer.Write(header); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		v := reflect.ValueOf(row)
		for i, index := range columns {
			record[i] = FormatCSVValue(v.Field(index))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteCSVToFile[T any](filename string, rows []T, delimiter rune) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, rows, delimiter)
}

// Parses value into the field, kind is the normalized kind returned by FieldKind.
//
// Unparsable values leave the zero value.
func ParseFieldValue(f reflect.Value, kind reflect.Kind, value string) {
	switch kind {
	case reflect.Bool:
		num, _ := strconv.ParseBool(value)
		f.SetBool(num)
	case reflect.Int:
		num, _ := strconv.ParseInt(value, 10, 64)
		f.SetInt(num)
	case reflect.Uint:
		num, _ := strconv.ParseUint(value, 10, 64)
		f.SetUint(num)
	case reflect.Float64:
		num, _ := strconv.ParseFloat(value, 64)
		f.SetFloat(num)
	case reflect.String:
		f.SetString(value)
	}
}

// Maps sized number kinds to Int, Uint or Float64, returns Invalid for unsupported kinds.
func FieldKind(typ reflect.Type) reflect.Kind {
	switch typ.Kind() {
	case reflect.Bool:
		return reflect.Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.Int
	case reflect.Float32, reflect.Float64:
		return reflect.Float64
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.Uint
	case reflect.String:
		return reflect.String
	default:
		return reflect.Invalid
	}
}

func FormatCSVValue(f reflect.Value) string {
	switch f.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(f.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(f.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(f.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(f.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(f.Float(), 'g', -1, 64)
	case reflect.String:
		return f.String()
	default:
		return fmt.Sprint(f.Interface())
	}
}

func _CSVFields(typ reflect.Type, name_row_mapping Dict[string, int]) List[Triple[int, int, reflect.Kind]] {
	num_field := typ.NumField()
	fields := NewList[Triple[int, int, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("csv")
		if tag == "" {
			continue
		}
		if !name_row_mapping.ContainsKey(tag) {
			continue
		}
		if kind := FieldKind(field.Type); kind != reflect.Invalid {
			fields.Add(MakeTriple(i, name_row_mapping[tag], kind))
		}
	}
	return fields
}
