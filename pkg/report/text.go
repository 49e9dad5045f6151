package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TextOptions configures WriteText.
type TextOptions struct {
	// Verbose lists records without diagnostics too.
	Verbose bool

	// Quiet prints the verdict line only.
	Quiet bool

	// AllowWarnings accepts feeds that have warnings but no errors.
	AllowWarnings bool
}

// IsValid reports whether the feed has no errors, and no warnings unless
// allowWarnings is set.
func (r *Report) IsValid(allowWarnings bool) bool {
	return r.Errors == 0 && (allowWarnings || r.Warnings == 0)
}

// WriteText writes the console form of r:
//
//	[line 3 E ] 10.0.0.0/8,AT,,,
//	  E ip_prefix - Private IP prefix not allowed
//	Lines: 4 TOTAL, 3 VALID, 1 ERROR, 0 WARNING
//	Counts: 1 ERROR, 0 WARNINGS
//	*** Feed INVALID ***
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	bw := bufio.NewWriter(w)

	if !opts.Quiet {
		name := r.RecordName
		if name == "" {
			name = DefaultRecordName
		}

		withErrors, withWarnings := 0, 0
		for _, rec := range r.Records {
			hasErrors, hasWarnings := rec.HasErrors(), rec.HasWarnings()
			if hasErrors {
				withErrors++
			}
			if hasWarnings {
				withWarnings++
			}
			if !opts.Verbose && !hasErrors && !hasWarnings {
				continue
			}

			fmt.Fprintf(bw, "[%s %d %s] %s\n", name, rec.No, status(hasErrors, hasWarnings), rec.Raw)
			for _, f := range rec.Fields {
				for _, msg := range f.Errors {
					fmt.Fprintf(bw, "  E %s - %s\n", f.Name, msg)
				}
				for _, msg := range f.Warnings {
					fmt.Fprintf(bw, "  W %s - %s\n", f.Name, msg)
				}
			}
		}

		fmt.Fprintf(bw, "%ss: %d TOTAL, %d VALID, %d ERROR, %d WARNING\n",
			capitalize(name), len(r.Records), len(r.Records)-withErrors, withErrors, withWarnings)
		fmt.Fprintf(bw, "Counts: %d ERROR%s, %d WARNING%s\n",
			r.Errors, plural(r.Errors), r.Warnings, plural(r.Warnings))
	}

	if r.IsValid(opts.AllowWarnings) {
		fmt.Fprintln(bw, "*** Feed VALID ***")
	} else {
		fmt.Fprintln(bw, "*** Feed INVALID ***")
	}
	return bw.Flush()
}

func status(hasErrors, hasWarnings bool) string {
	if !hasErrors && !hasWarnings {
		return "OK"
	}
	s := []byte("  ")
	if hasErrors {
		s[0] = 'E'
	}
	if hasWarnings {
		s[1] = 'W'
	}
	return string(s)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
