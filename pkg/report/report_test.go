package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inet.af/netaddr"

	"github.com/geofeed/validator/pkg/codes"
	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/result"
	"github.com/geofeed/validator/pkg/schema"
	"github.com/geofeed/validator/pkg/validator"
)

const feed = `# comment
10.0.0.0/8,AT,,,
8.8.8.0/24,AT,AT-9,Wien,
55.66.77.88/24,US
8.8.4.0/24,US,,,,extra`

func validate(t *testing.T, s *validator.Schema, text string) *result.ValidationResult {
	t.Helper()
	v, err := validator.New(s, strings.NewReader(text), validator.WithRawRecords(true))
	require.NoError(t, err)
	res, err := v.Validate()
	require.NoError(t, err)
	return res
}

func TestNew(t *testing.T) {
	res := validate(t, schema.Final(), feed)
	r := New(res, schema.NameFinal)

	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, "final", r.Schema)
	assert.Equal(t, DefaultRecordName, r.RecordName)
	assert.False(t, r.Valid)
	assert.Equal(t, 2, r.Errors)
	assert.Equal(t, 3, r.Warnings)
	assert.True(t, r.StoresRaw)
	assert.Equal(t, []string{"ip_prefix", "alpha2code", "region", "city", "postal_code"}, r.Fields)

	require.Len(t, r.Records, 5)
	assert.True(t, r.Records[0].Ignored)
	assert.Empty(t, r.Records[0].Fields)

	rec := r.Records[2]
	assert.Equal(t, 2, rec.No)
	assert.Equal(t, "8.8.8.0/24,AT,AT-9,Wien,", rec.Raw)
	assert.Equal(t, Field{Name: "region", ValueString: "AT-9", Raw: "AT-9", Present: true}, rec.Fields[2])
	assert.False(t, rec.HasErrors())

	rec = r.Records[3]
	assert.True(t, rec.HasErrors())
	assert.True(t, rec.HasWarnings())
	assert.Equal(t, "55.66.77.88/24", rec.Fields[0].ValueString)
	assert.False(t, rec.Fields[4].Present)

	assert.Equal(t, []string{"extra"}, r.Records[4].Extra)
	assert.Equal(t, 5, r.Records[4].ExtraOffset)
}

func TestNew_UniqueRunIDs(t *testing.T) {
	res := validate(t, schema.Final(), feed)
	assert.NotEqual(t, New(res, "final").RunID, New(res, "final").RunID)
}

func TestDecode_JSON(t *testing.T) {
	res := validate(t, schema.Final(), feed)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, New(res, schema.NameFinal)))
	assert.Contains(t, buf.String(), `"value_string": "AT-9"`)

	got, err := Decode(buf.Bytes(), schema.Final())
	require.NoError(t, err)
	assertRestored(t, res, got)
}

func TestDecode_YAML(t *testing.T) {
	res := validate(t, schema.Final(), feed)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, New(res, schema.NameFinal)))
	assert.Contains(t, buf.String(), "value_string: AT-9")

	table, err := codes.NewTable()
	require.NoError(t, err)
	got, err := DecodeWithLookup(buf.Bytes(), schema.Final(), table)
	require.NoError(t, err)
	assertRestored(t, res, got)
}

func assertRestored(t *testing.T, want, got *result.ValidationResult) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	assert.Equal(t, want.ErrorCount(), got.ErrorCount())
	assert.Equal(t, want.WarningCount(), got.WarningCount())
	assert.Equal(t, want.RawRecords(), got.RawRecords())
	assert.True(t, got.Record(0).Ignored())

	prefix := got.Record(3).FieldValue(field.Name("ip_prefix"))
	assert.Equal(t, netaddr.MustParseIPPrefix("55.66.77.88/24"), prefix)

	region := got.Record(2).FieldValue(field.Name("region"))
	require.IsType(t, codes.Subdivision{}, region)
	assert.Equal(t, "AT", region.(codes.Subdivision).Country)

	assert.Equal(t, "Wien", got.Record(2).FieldValue(field.Name("city")))
	assert.Nil(t, got.Record(3).FieldValue(field.Name("postal_code")))
	assert.Equal(t, []string{"extra"}, got.Record(4).Extra())

	fr, ok := got.Record(1).FieldResult(field.Name("ip_prefix"))
	require.True(t, ok)
	assert.Equal(t, want.Fields()[0].Name(), fr.Field.Name())
	assert.Equal(t, []string{"Private IP prefix not allowed"}, fr.Errors)
}

func TestDecode_AllocationSize(t *testing.T) {
	res := validate(t, schema.Draft02AllocationSize(), "8.8.8.0/24,AT,,,,/28")

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, New(res, schema.NameDraft02AllocationSize)))
	got, err := Decode(buf.Bytes(), schema.Draft02AllocationSize())
	require.NoError(t, err)
	assert.Equal(t, 28, got.Record(0).FieldValue(field.Name("allocation_size")))
}

func TestDecode_Errors(t *testing.T) {
	res := validate(t, schema.Final(), feed)
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, New(res, schema.NameFinal)))

	_, err := Decode(buf.Bytes(), schema.Draft02())
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Decode([]byte("{not json"), schema.Final())
	assert.Error(t, err)

	_, err = Decode([]byte("records: [1, 2"), schema.Final())
	assert.Error(t, err)

	_, err = Decode(buf.Bytes(), nil)
	assert.ErrorIs(t, err, validator.ErrInvalidSchema)
}

func TestWriteText(t *testing.T) {
	r := New(validate(t, schema.Final(), feed), schema.NameFinal)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r, TextOptions{}))
	want := `[line 1 E ] 10.0.0.0/8,AT,,,
  E ip_prefix - Private IP prefix not allowed
[line 3 EW] 55.66.77.88/24,US
  E ip_prefix - Host bits set, did you mean 55.66.77.0/24?
  W region - Field is missing.
  W city - Field is missing.
  W postal_code - Field is missing.
Lines: 5 TOTAL, 3 VALID, 2 ERROR, 1 WARNING
Counts: 2 ERRORS, 3 WARNINGS
*** Feed INVALID ***
`
	assert.Equal(t, want, buf.String())
}

func TestWriteText_Options(t *testing.T) {
	r := New(validate(t, schema.Final(), "8.8.8.0/24,AT\n8.8.4.0/24,AT,,,"), schema.NameFinal)
	r.RecordName = "record"

	tests := []struct {
		name     string
		opts     TextOptions
		contains []string
		excludes []string
	}{
		{
			name:     "verbose",
			opts:     TextOptions{Verbose: true},
			contains: []string{"[record 1 OK] 8.8.4.0/24,AT,,,", "Records: 2 TOTAL, 2 VALID, 0 ERROR, 1 WARNING", "*** Feed INVALID ***"},
		},
		{
			name:     "warnings allowed",
			opts:     TextOptions{AllowWarnings: true},
			contains: []string{"[record 0  W]", "Counts: 0 ERRORS, 3 WARNINGS", "*** Feed VALID ***"},
			excludes: []string{"[record 1"},
		},
		{
			name:     "quiet",
			opts:     TextOptions{Quiet: true, AllowWarnings: true},
			contains: []string{"*** Feed VALID ***"},
			excludes: []string{"Counts", "[record"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteText(&buf, r, tt.opts))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestEncodeAll(t *testing.T) {
	a := New(validate(t, schema.Final(), "8.8.8.0/24,AT,,,"), schema.NameFinal)
	a.Source = "a.csv"
	b := New(validate(t, schema.Final(), feed), schema.NameFinal)
	b.Source = "https://example.com/geofeed.csv"

	var buf bytes.Buffer
	require.NoError(t, EncodeAllJSON(&buf, []*Report{a, b}))
	assert.True(t, strings.HasPrefix(buf.String(), "["))
	assert.Contains(t, buf.String(), `"source": "a.csv"`)

	buf.Reset()
	require.NoError(t, EncodeAllYAML(&buf, []*Report{a, b}))
	assert.True(t, strings.HasPrefix(buf.String(), "- run_id: "))
	assert.Contains(t, buf.String(), "source: https://example.com/geofeed.csv")
}
