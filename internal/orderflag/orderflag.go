// Package orderflag provides boolean command-line flags that remember the
// order in which they were given.
//
// Several flags built from the same Record share it, so a caller can replay
// them in the exact sequence the user typed:
//
//	rec := orderflag.NewRecord()
//	r := orderflag.New(rec)
//	r.MustDefine(fs, &name, orderflag.Spec{Name: "name"})
//	r.MustDefine(fs, &version, orderflag.Spec{Name: "version"})
//	_ = fs.Parse([]string{"--version", "--name"})
//	rec.Order() // [version name]
package orderflag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

var (
	// ErrNArgsNotAllowed is returned when a spec asks for flag arguments.
	ErrNArgsNotAllowed = errors.New("nargs not allowed")
	// ErrConstNotAllowed is returned when a spec overrides the value stored on use.
	ErrConstNotAllowed = errors.New("const not allowed")
	// ErrDefaultNotAllowed is returned when a spec overrides the false default.
	ErrDefaultNotAllowed = errors.New("default not allowed")
	// ErrFlagExists is returned when the flag set already holds the name.
	ErrFlagExists = errors.New("flag already defined")
	// ErrExplicitValue is returned by Set for any value other than true.
	ErrExplicitValue = errors.New("flag does not take a value")
)

// Record is the ordered log of order-tracked flags seen during one parse.
// The zero value is ready to use.
type Record struct {
	entries []string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{}
}

// Append adds dest to the end of the record.
func (r *Record) Append(dest string) {
	if r.entries == nil {
		r.entries = make([]string, 0, 2)
	}
	r.entries = append(r.entries, dest)
}

// Order returns a copy of the recorded destinations in encounter order. It is
// never nil.
func (r *Record) Order() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len reports how many flag occurrences were recorded.
func (r *Record) Len() int {
	return len(r.entries)
}

// Used reports whether any order-tracked flag was given.
func (r *Record) Used() bool {
	return len(r.entries) > 0
}

// Contains reports whether dest was recorded at least once.
func (r *Record) Contains(dest string) bool {
	for _, e := range r.entries {
		if e == dest {
			return true
		}
	}
	return false
}

// Spec is a generic flag definition. Only the fields compatible with a plain
// boolean switch may be set; NArgs, Const and Default exist so that a
// definition asking for anything else is rejected instead of silently
// ignored.
type Spec struct {
	Name      string
	Shorthand string
	// Dest names the entry appended to the record. Defaults to Name with
	// dashes replaced by underscores.
	Dest  string
	Usage string

	NArgs   *int
	Const   *string
	Default *string
}

func (s Spec) dest() string {
	if s.Dest != "" {
		return s.Dest
	}
	return strings.ReplaceAll(strings.TrimLeft(s.Name, "-"), "-", "_")
}

func (s Spec) validate() error {
	if s.NArgs != nil {
		return ErrNArgsNotAllowed
	}
	if s.Const != nil {
		return ErrConstNotAllowed
	}
	if s.Default != nil {
		return ErrDefaultNotAllowed
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("flag name is required")
	}
	return nil
}

// Recorder defines order-tracked flags that all append to one Record.
type Recorder struct {
	record *Record
}

// New returns a recorder appending to rec. A nil rec gets a fresh record.
func New(rec *Record) *Recorder {
	if rec == nil {
		rec = NewRecord()
	}
	return &Recorder{record: rec}
}

// Record returns the shared record.
func (r *Recorder) Record() *Record {
	return r.record
}

// Define registers an order-tracked switch on fs. p starts out false and is
// set to true every time the flag is parsed.
func (r *Recorder) Define(fs *pflag.FlagSet, p *bool, spec Spec) (*pflag.Flag, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("define --%s: %w", spec.Name, err)
	}
	if fs.Lookup(spec.Name) != nil {
		return nil, fmt.Errorf("define --%s: %w", spec.Name, ErrFlagExists)
	}
	if spec.Shorthand != "" && fs.ShorthandLookup(spec.Shorthand) != nil {
		return nil, fmt.Errorf("define -%s: %w", spec.Shorthand, ErrFlagExists)
	}

	*p = false
	v := &value{dest: spec.dest(), target: p, record: r.record}
	flag := fs.VarPF(v, spec.Name, spec.Shorthand, spec.Usage)
	flag.NoOptDefVal = "true"
	return flag, nil
}

// MustDefine is Define for command construction, where a bad spec is a
// programming error.
func (r *Recorder) MustDefine(fs *pflag.FlagSet, p *bool, spec Spec) *pflag.Flag {
	flag, err := r.Define(fs, p, spec)
	if err != nil {
		panic(err)
	}
	return flag
}

type value struct {
	dest   string
	target *bool
	record *Record
}

func (v *value) String() string {
	if v == nil || v.target == nil {
		return "false"
	}
	return strconv.FormatBool(*v.target)
}

func (v *value) Set(s string) error {
	if ok, err := strconv.ParseBool(s); err != nil || !ok {
		return ErrExplicitValue
	}
	v.record.Append(v.dest)
	*v.target = true
	return nil
}

func (v *value) Type() string {
	return "bool"
}
