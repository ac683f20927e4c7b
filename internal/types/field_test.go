package types

import (
	"encoding/json"
	"testing"
)

func TestSection_String(t *testing.T) {
	tests := []struct {
		section Section
		want    string
	}{
		{PNGText, "PNG tEXt"},
		{PNGCompressedText, "PNG zTXt"},
		{PNGInternationalText, "PNG iTXt"},
		{ContainerSection("IFD0"), "IFD0"},
		{ContainerSection("GPS"), "GPS"},
	}
	for _, tt := range tests {
		if got := tt.section.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSortFields(t *testing.T) {
	fields := []Field{
		{Tag: "Software", Section: PNGText, Value: "b"},
		{Tag: "Model", Section: ContainerSection("IFD0"), Value: "x"},
		{Tag: "Comment", Section: PNGText, Value: "first"},
		{Tag: "FNumber", Section: ContainerSection("Exif"), Value: "f/2.8"},
		{Tag: "Comment", Section: PNGText, Value: "second"},
		{Tag: "Make", Section: ContainerSection("IFD0"), Value: "y"},
	}

	SortFields(fields)

	want := []struct{ section, tag, value string }{
		{"Exif", "FNumber", "f/2.8"},
		{"IFD0", "Make", "y"},
		{"IFD0", "Model", "x"},
		{"PNG tEXt", "Comment", "first"},
		{"PNG tEXt", "Comment", "second"},
		{"PNG tEXt", "Software", "b"},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, w := range want {
		f := fields[i]
		if f.Section.String() != w.section || f.Tag != w.tag || f.Value != w.value {
			t.Errorf("fields[%d] = {%s %s %s}, want %v", i, f.Section, f.Tag, f.Value, w)
		}
	}

	for i := 1; i < len(fields); i++ {
		if CompareFields(fields[i-1], fields[i]) > 0 {
			t.Errorf("fields %d and %d out of order", i-1, i)
		}
	}
}

func TestField_MarshalJSON(t *testing.T) {
	f := Field{Tag: "Software", Section: PNGText, Value: "Test App"}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"tag":"Software","section":"PNG tEXt","value":"Test App"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
