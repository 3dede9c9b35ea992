// Package profile contains the host-profile data model for sshedit and the
// codec between that model and the OpenSSH-style client config text format.
package profile

import (
	"errors"
	"strings"
)

// Profile is one addressable host entry as stored in the config file.
//
// Name is the Host alias and is always non-empty; every other field is
// optional. Optional fields are pointers so that "absent" and
// "present but empty" stay distinct: absent fields are omitted entirely on
// serialization, never written as empty values.
//
// Values are raw strings as found in the file. No semantic validation is
// applied (Port is not parsed as a number, ForwardAgent is not parsed as a
// boolean); the external ssh client owns interpretation.
type Profile struct {
	Name         string
	HostName     *string
	User         *string
	Port         *string
	IdentityFile *string
	ProxyJump    *string
	ForwardAgent *string

	// Password is stored in the file as an annotated comment line rather
	// than a real directive. This is an obfuscation convention carried over
	// from the source format, not security; callers must not assume any
	// form of encryption.
	Password *string
}

// ErrEmptyName is returned when constructing a Profile without a name.
var ErrEmptyName = errors.New("profile: name must not be empty")

// New constructs a Profile with the given host alias.
func New(name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, ErrEmptyName
	}
	return Profile{Name: name}, nil
}

// Field identifies one editable Profile field.
//
// The editor walks fields by this identifier instead of a raw numeric index
// so that accessors stay exhaustive when the field set changes.
type Field int

const (
	FieldName Field = iota
	FieldHostName
	FieldUser
	FieldPort
	FieldIdentityFile
	FieldProxyJump
	FieldForwardAgent
	FieldPassword
)

// Fields returns all editable fields in fixed display/serialization order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldHostName,
		FieldUser,
		FieldPort,
		FieldIdentityFile,
		FieldProxyJump,
		FieldForwardAgent,
		FieldPassword,
	}
}

// Label returns the human-readable form label for the field.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldHostName:
		return "HostName"
	case FieldUser:
		return "User"
	case FieldPort:
		return "Port"
	case FieldIdentityFile:
		return "IdentityFile"
	case FieldProxyJump:
		return "ProxyJump"
	case FieldForwardAgent:
		return "ForwardAgent"
	case FieldPassword:
		return "Password"
	}
	return "?"
}

// Get returns the current value of the field and whether it is set.
// Name is always considered set.
func (p *Profile) Get(f Field) (string, bool) {
	switch f {
	case FieldName:
		return p.Name, true
	case FieldHostName:
		return deref(p.HostName)
	case FieldUser:
		return deref(p.User)
	case FieldPort:
		return deref(p.Port)
	case FieldIdentityFile:
		return deref(p.IdentityFile)
	case FieldProxyJump:
		return deref(p.ProxyJump)
	case FieldForwardAgent:
		return deref(p.ForwardAgent)
	case FieldPassword:
		return deref(p.Password)
	}
	return "", false
}

// Set assigns the value of a field, materializing an optional field that was
// previously absent.
func (p *Profile) Set(f Field, v string) {
	switch f {
	case FieldName:
		p.Name = v
	case FieldHostName:
		p.HostName = &v
	case FieldUser:
		p.User = &v
	case FieldPort:
		p.Port = &v
	case FieldIdentityFile:
		p.IdentityFile = &v
	case FieldProxyJump:
		p.ProxyJump = &v
	case FieldForwardAgent:
		p.ForwardAgent = &v
	case FieldPassword:
		p.Password = &v
	}
}

// Equal reports whether two profiles hold the same name and the same set of
// field values (absent fields must be absent on both sides).
func (p Profile) Equal(o Profile) bool {
	for _, f := range Fields() {
		av, aok := p.Get(f)
		bv, bok := o.Get(f)
		if aok != bok || av != bv {
			return false
		}
	}
	return true
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
