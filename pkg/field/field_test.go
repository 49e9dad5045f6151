package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geofeed/validator/pkg/codes"
)

func TestNew_InvalidDefinition(t *testing.T) {
	_, err := New(Definition{ErrorText: "bad"})
	require.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = New(Definition{Name: "x"})
	require.ErrorIs(t, err, ErrInvalidDefinition)

	assert.Panics(t, func() { MustNew(Definition{}) })
}

func TestValidate_CheckNormalization(t *testing.T) {
	tests := []struct {
		name      string
		warning   string
		errors    Check
		warnings  Check
		wantErrs  []string
		wantWarns []string
	}{
		{"pass", "warn", Pass(), Pass(), nil, nil},
		{"default", "warn", Default(), Default(), []string{"err"}, []string{"warn"}},
		{"default without text", "", Pass(), Default(), nil, nil},
		{"custom", "warn", Custom("a", "b"), Custom("c"), []string{"a", "b"}, []string{"c"}},
		{"empty custom", "warn", Custom(), Custom(), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MustNew(Definition{
				Name:        "f",
				ErrorText:   "err",
				WarningText: tt.warning,
				Errors:      func(string) Check { return tt.errors },
				Warnings:    func(string) Check { return tt.warnings },
			})
			out, err := f.Validate("x")
			require.NoError(t, err)
			assert.Equal(t, tt.wantErrs, out.Errors)
			assert.Equal(t, tt.wantWarns, out.Warnings)
			assert.Equal(t, "x", out.Value)
		})
	}
}

func TestValidate_InvalidCheck(t *testing.T) {
	f := MustNew(Definition{
		Name:      "f",
		ErrorText: "err",
		Warnings:  func(string) Check { return Check{} },
	})
	_, err := f.Validate("x")
	require.ErrorIs(t, err, ErrInvalidCheck)
	assert.False(t, Check{}.IsValid())
	assert.True(t, Pass().IsValid())
}

func TestCustomMessagesAreCopied(t *testing.T) {
	msgs := []string{"a"}
	c := Custom(msgs...)
	got, err := c.Messages("")
	require.NoError(t, err)
	got[0] = "changed"

	again, _ := c.Messages("")
	assert.Equal(t, []string{"a"}, again)
}

func TestNetwork(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"8.8.8.0/24", nil},
		{"8.8.8.8", nil},
		{"2a00:1450::/32", nil},
		{"", []string{"Not a valid IP network"}},
		{"asdf", []string{"Not a valid IP network"}},
		{"55.66.77", []string{"Not a valid IP network"}},
		{"55.66.77.0/35", []string{"Not a valid IP network"}},
		{"55.66.77.88/24", []string{"Host bits set, did you mean 55.66.77.0/24?"}},
		{"169.254.1.0/24", []string{"Link-local network not allowed"}},
		{"fe80::/64", []string{"Link-local network not allowed"}},
		{"127.0.0.1", []string{"Loopback network not allowed"}},
		{"::1", []string{"Loopback network not allowed"}},
		{"224.0.0.0/8", []string{"Multicast network not allowed"}},
		{"ff02::1", []string{"Multicast network not allowed"}},
		{"192.0.2.0/24", []string{"Reserved network not allowed"}},
		{"2001:db8:cafe::/48", []string{"Reserved network not allowed"}},
		{"aaaa::", []string{"Reserved network not allowed"}},
		{"fe00::/48", []string{"Reserved network not allowed"}},
		{"10.0.0.0/8", []string{"Private network not allowed"}},
		{"172.16.5.0/24", []string{"Private network not allowed"}},
		{"192.168.100.1", []string{"Private network not allowed"}},
		{"fc00::/48", []string{"Private network not allowed"}},
		{"172.15.30.1", nil},
		{"192.167.100.1", nil},
		{"2001::/64", nil},
		{"169.254.10.0/24", []string{"Link-local network not allowed"}},
		// Supernets of special ranges are not inside them.
		{"0.0.0.0/0", nil},
		{"100.0.0.0/8", nil},
		{"192.0.0.0/16", nil},
		{"2001::/16", nil},
		{"172.0.0.0/8", nil},
	}

	f := Network()
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			out, err := f.Validate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Errors)
			assert.Empty(t, out.Warnings)
		})
	}
}

func TestIPPrefix(t *testing.T) {
	f := IPPrefix()
	assert.Equal(t, "ip_prefix", f.Name())
	assert.Equal(t, RoleNetwork, f.Role())

	out, err := f.Validate("zzzz::")
	require.NoError(t, err)
	assert.Equal(t, []string{"Not a valid IP prefix"}, out.Errors)

	out, err = f.Validate("10.0.5.0/24")
	require.NoError(t, err)
	assert.Equal(t, []string{"Private IP prefix not allowed"}, out.Errors)
}

func TestNetwork_Value(t *testing.T) {
	f := Network()
	assert.Equal(t, "8.8.8.8/32", f.String("8.8.8.8"))
	assert.Equal(t, "2001:db8::/32", f.String("2001:DB8::/32"))
	assert.Equal(t, "55.66.77.88/24", f.String("55.66.77.88/24"))
	assert.Equal(t, "", f.String("nope"))

	_, err := ParseNetwork("fe80::1%eth0")
	assert.Error(t, err)
}

func testLookup(t *testing.T) codes.Lookup {
	t.Helper()
	table, err := codes.NewTable()
	require.NoError(t, err)
	return table
}

func TestCountry(t *testing.T) {
	f := Country(testLookup(t))

	tests := []struct {
		raw   string
		errs  int
		value string
	}{
		{"AT", 0, "AT"},
		{"de", 0, "DE"},
		{"", 0, ""},
		{"ZZ", 1, ""},
		{"USA", 1, ""},
		{"99", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			out, err := f.Validate(tt.raw)
			require.NoError(t, err)
			assert.Len(t, out.Errors, tt.errs)
			assert.Empty(t, out.Warnings)
			assert.Equal(t, tt.value, f.Format(out.Value))
		})
	}
}

func TestAlpha2Code(t *testing.T) {
	f := Alpha2Code(testLookup(t))

	tests := []struct {
		raw         string
		errs, warns []string
	}{
		{"US", nil, nil},
		{"pl", nil, nil},
		{"", nil, nil},
		{"ZZ", nil, []string{"Not an assigned ISO3316-1 alpha-2 code"}},
		{"USA", []string{"Not a valid ISO3166-1 alpha-2 code"}, nil},
		{"99", []string{"Not a valid ISO3166-1 alpha-2 code"}, nil},
		{"U1", []string{"Not a valid ISO3166-1 alpha-2 code"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			out, err := f.Validate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.errs, out.Errors)
			assert.Equal(t, tt.warns, out.Warnings)
		})
	}
}

func TestSubdivision(t *testing.T) {
	l := testLookup(t)

	for _, f := range []*Field{Subdivision(l), Region(l)} {
		t.Run(f.Name(), func(t *testing.T) {
			out, err := f.Validate("AT-1")
			require.NoError(t, err)
			assert.Empty(t, out.Errors)
			sub, ok := out.Value.(codes.Subdivision)
			require.True(t, ok)
			assert.Equal(t, "AT", sub.Country)

			out, err = f.Validate("USA-CA")
			require.NoError(t, err)
			assert.Equal(t, []string{"Not a valid ISO3166-2 subdivision code"}, out.Errors)
			assert.Nil(t, out.Value)

			out, err = f.Validate("")
			require.NoError(t, err)
			assert.Empty(t, out.Errors)
			assert.Nil(t, out.Value)
		})
	}
}

func TestTextFields(t *testing.T) {
	out, err := City().Validate("Mountain View")
	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	assert.Equal(t, "Mountain View", out.Value)

	out, err = ZipCode().Validate("94043")
	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	assert.Empty(t, out.Warnings)

	postal := PostalCode()
	out, err = postal.Validate("02-784")
	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	assert.Equal(t, []string{"This field is deprecated and should no longer be used"}, out.Warnings)

	out, err = postal.Validate("  ")
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
}

func TestAllocationSize(t *testing.T) {
	f := AllocationSize()

	tests := []struct {
		raw   string
		err   bool
		value any
	}{
		{"", false, ""},
		{"/24", false, 24},
		{"/-1", false, -1},
		{"/129", false, 129},
		{"24", true, nil},
		{"/", true, nil},
		{"/x", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			out, err := f.Validate(tt.raw)
			require.NoError(t, err)
			if tt.err {
				assert.Equal(t, []string{"Must be valid CIDR notation"}, out.Errors)
			} else {
				assert.Empty(t, out.Errors)
			}
			assert.Equal(t, tt.value, out.Value)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	l := testLookup(t)
	inputs := map[*Field][]string{
		Network():        {"8.8.8.0/24", "8.8.8.8", "2001:DB8::/32", "55.66.77.88/24"},
		IPPrefix():       {"2a00::/16"},
		Country(l):       {"at", "US", ""},
		Alpha2Code(l):    {"pl", ""},
		Subdivision(l):   {"us-ca", "AT-9"},
		City():           {"Vienna", ""},
		PostalCode():     {"1010"},
		AllocationSize(): {"/24", "", "/-3"},
	}

	for f, raws := range inputs {
		for _, raw := range raws {
			v, err := f.Parse(raw)
			require.NoError(t, err, "%s %q", f.Name(), raw)
			assert.Equal(t, f.Format(v), f.String(raw), "%s %q", f.Name(), raw)
		}
	}
}

func TestPrimitives(t *testing.T) {
	upper := func(s string) bool { return s == "OK" }

	assert.True(t, FormatCheck(upper)("").IsPass())
	assert.True(t, FormatCheck(upper)("OK").IsPass())
	assert.False(t, FormatCheck(upper)("no").IsPass())

	assert.True(t, When(upper, func(string) Check { return Default() })("no").IsPass())
	assert.False(t, When(upper, func(string) Check { return Default() })("OK").IsPass())

	first := FirstOf(Unvalidated, func(string) Check { return Custom("a") }, func(string) Check { return Custom("b") })
	msgs, err := first("x").Messages("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, msgs)

	assert.True(t, Deprecated("").IsPass())
	assert.False(t, Deprecated("x").IsPass())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "network", RoleNetwork.String())
	assert.Equal(t, "allocation-size", RoleAllocationSize.String())
	assert.Equal(t, "none", RoleNone.String())
	assert.Equal(t, "city", Name("city").Name())
}
