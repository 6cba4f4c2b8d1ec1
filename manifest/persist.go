package manifest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// On-disk format of a manifest. Entries are listed per kind in insertion
// order, so loading a saved manifest reproduces the original key order.

type fileFormat struct {
	Version int           `yaml:"version"`
	Vars    []varRecord   `yaml:"vars,omitempty"`
	Consts  []constRecord `yaml:"consts,omitempty"`
	Rules   []ruleRecord  `yaml:"rules,omitempty"`
	Dynamic []dynRecord   `yaml:"dynamic,omitempty"`
	Atoms   []atomRecord  `yaml:"atoms,omitempty"`
}

const fileFormatVersion = 2

type varRecord struct {
	Module  string `yaml:"module"`
	Name    string `yaml:"name"`
	Ident   string `yaml:"ident"`
	Default string `yaml:"default,omitempty"`
}

type atomRecord struct {
	Class    string `yaml:"class"`
	Property string `yaml:"property"`
	Value    string `yaml:"value"`
}

type constRecord struct {
	Module string `yaml:"module"`
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
}

type propRecord struct {
	Property string `yaml:"property"`
	Class    string `yaml:"class"`
}

type ruleRecord struct {
	Module string       `yaml:"module"`
	Name   string       `yaml:"name"`
	Props  []propRecord `yaml:"props"`
}

type paramRecord struct {
	Name string `yaml:"name"`
	Var  string `yaml:"var"`
}

type dynRecord struct {
	Module  string        `yaml:"module"`
	Name    string        `yaml:"name"`
	Class   string        `yaml:"class,omitempty"`
	Static  []propRecord  `yaml:"static,omitempty"`
	Dynamic []propRecord  `yaml:"dynamic,omitempty"`
	Params  []paramRecord `yaml:"params"`
}

// ErrFormat is returned by Load for input which is not a manifest.
var ErrFormat = errors.New("manifest: invalid manifest file")

// Save writes the manifest as YAML.
func (m *Manifest) Save(w io.Writer) error {
	f := fileFormat{Version: fileFormatVersion}
	for k, e := range m.All(KindVar) {
		v := e.(Var)
		f.Vars = append(f.Vars, varRecord{k.Module, k.Name, v.Ident, v.Default})
	}
	for k, e := range m.All(KindConst) {
		f.Consts = append(f.Consts, constRecord{k.Module, k.Name, string(e.(Const))})
	}
	for k, e := range m.All(KindRule) {
		f.Rules = append(f.Rules, ruleRecord{k.Module, k.Name, toPropRecords(e.(Rule).Props)})
	}
	for k, e := range m.All(KindDynamicRule) {
		d := e.(DynamicRule)
		rec := dynRecord{
			Module:  k.Module,
			Name:    k.Name,
			Class:   d.Class,
			Static:  toPropRecords(d.Static),
			Dynamic: toPropRecords(d.Dynamic),
			Params:  make([]paramRecord, len(d.Params)),
		}
		for i, p := range d.Params {
			rec.Params[i] = paramRecord(p)
		}
		f.Dynamic = append(f.Dynamic, rec)
	}
	for k, e := range m.All(KindAtom) {
		a := e.(Atom)
		f.Atoms = append(f.Atoms, atomRecord{k.Name, a.Property, a.Value})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("manifest: cannot save: %w", err)
	}
	return enc.Close()
}

// Load reads a manifest previously written by Save.
func Load(r io.Reader) (*Manifest, error) {
	var f fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if f.Version != fileFormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, f.Version)
	}
	m := &Manifest{}
	for _, v := range f.Vars {
		if v.Ident == "" {
			return nil, fmt.Errorf("%w: var %s.%s without identifier", ErrFormat, v.Module, v.Name)
		}
		m = m.Put(KindVar, K(v.Module, v.Name), Var{Ident: v.Ident, Default: v.Default})
	}
	for _, c := range f.Consts {
		m = m.Put(KindConst, K(c.Module, c.Name), Const(c.Value))
	}
	for _, r := range f.Rules {
		m = m.Put(KindRule, K(r.Module, r.Name), Rule{Props: fromPropRecords(r.Props)})
	}
	for _, d := range f.Dynamic {
		rule := DynamicRule{
			Class:   d.Class,
			Static:  fromPropRecords(d.Static),
			Dynamic: fromPropRecords(d.Dynamic),
			Params:  make([]Param, len(d.Params)),
		}
		for i, p := range d.Params {
			rule.Params[i] = Param(p)
		}
		m = m.Put(KindDynamicRule, K(d.Module, d.Name), rule)
	}
	for _, a := range f.Atoms {
		if a.Class == "" || a.Property == "" || a.Value == "" {
			return nil, fmt.Errorf("%w: incomplete atom %q", ErrFormat, a.Class)
		}
		m = m.Put(KindAtom, AtomKey(a.Class), Atom{Property: a.Property, Value: a.Value})
	}
	tracer().Infof("loaded manifest with %d vars, %d consts, %d rules, %d dynamic rules, %d atoms",
		m.Len(KindVar), m.Len(KindConst), m.Len(KindRule), m.Len(KindDynamicRule), m.Len(KindAtom))
	return m, nil
}

func toPropRecords(pc PropClasses) []propRecord {
	if len(pc) == 0 {
		return nil
	}
	recs := make([]propRecord, len(pc))
	for i, p := range pc {
		recs[i] = propRecord(p)
	}
	return recs
}

func fromPropRecords(recs []propRecord) PropClasses {
	if len(recs) == 0 {
		return nil
	}
	pc := make(PropClasses, len(recs))
	for i, r := range recs {
		pc[i] = PropClass(r)
	}
	return pc
}
