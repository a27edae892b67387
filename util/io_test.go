package util

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type CVSSimpleTest struct {
	Name   string  `csv:"name"`
	Age    int     `csv:"age"`
	Height float32 `csv:"height"`
	Gender bool    `csv:"gender"`
}

func TestCSVSimple(t *testing.T) {
	file := "./testdata/simple.csv"

	rows, err := ReadCSVFromFile[CVSSimpleTest](file, ';')
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	for i, row := range rows {
		if i == 0 {
			if row.Name != "John" || row.Age != 30 || row.Height != 170 || row.Gender != false {
				t.Errorf("row.Name = %v; want name", row.Name)
			}
		} else if i == 1 {
			if row.Name != "Jane" || row.Age != 25 || row.Height != 160 || row.Gender != true {
				t.Errorf("row.Name = %v; want Jane", row.Name)
			}
		} else if i == 2 {
			if row.Name != "Joe" || row.Age != 35 || row.Height != 175 || row.Gender != true {
				t.Errorf("row.Name = %v; want Joe", row.Name)
			}
		} else {
			t.Errorf("too many rows")
		}
	}
}

func TestCSVError(t *testing.T) {
	file := "./testdata/error.csv"

	rows, err := ReadCSVFromFile[CVSSimpleTest](file, ';')
	if err != nil {
		t.Fatalf("failed to read csv: %v", err)
	}
	for i, row := range rows {
		if i == 0 {
			if row.Name != "John" || row.Age != 30 || row.Height != 170.5 || row.Gender != false {
				t.Errorf("row.Name = %v; want name", row.Name)
			}
		} else if i == 1 {
			if row.Name != "Jane" || row.Age != 25 || row.Height != 160.9 || row.Gender != true {
				t.Errorf("row.Name = %v; want Jane", row.Name)
			}
		} else if i == 2 {
			if row.Name != "'Joe" || row.Age != 35 || row.Height != 175.0 || row.Gender != true {
				t.Errorf("row.Name = %v; want Joe", row.Name)
			}
		} else if i == 3 {
			if row.Name != "" || row.Age != 28 || row.Height != 0 || row.Gender != false {
				t.Errorf("row.Name = %v; want Mark", row.Name)
			}
		} else {
			t.Errorf("too many rows")
		}
	}
}

func TestCSVWrite(t *testing.T) {
	rows := []CVSSimpleTest{
		{Name: "John", Age: 30, Height: 170.5, Gender: false},
		{Name: "Jane", Age: 25, Height: 160, Gender: true},
	}
	buf := bytes.Buffer{}
	require.NoError(t, WriteCSV(&buf, rows, ';'))
	require.Equal(t, "name;age;height;gender\nJohn;30;170.5;false\nJane;25;160;true\n", buf.String())

	read, err := ReadCSV[CVSSimpleTest](&buf, ';')
	require.NoError(t, err)
	require.Equal(t, rows, []CVSSimpleTest(read))
}

func TestCompressedArrayFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "weights")
	arr := Array[float64]{1, 2.5, 0, 1e6}

	require.NoError(t, WriteArrayToFile(arr, file))
	loaded, err := ReadArrayFromFile[float64](file)
	require.NoError(t, err)
	require.Equal(t, arr, loaded)

	_, err = ReadArrayFromFile[float64](file + "-missing")
	require.Error(t, err)
}
