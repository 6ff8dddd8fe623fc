package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Type is a 4-byte resource type tag such as "UTC ". Tags shorter
// than 4 bytes are padded with spaces on the wire.
type Type string

const (
	AreaType         Type = "ARE "
	BioCreatureType  Type = "BIC "
	CreatureType     Type = "UTC "
	DialogType       Type = "DLG "
	DoorType         Type = "UTD "
	EncounterType    Type = "UTE "
	FactionType      Type = "FAC "
	GameInstanceType Type = "GIT "
	GameCommentType  Type = "GIC "
	GUIType          Type = "GUI "
	ItemType         Type = "UTI "
	JournalType      Type = "JRL "
	ModuleInfoType   Type = "IFO "
	MerchantType     Type = "UTM "
	PaletteType      Type = "ITP "
	PlaceableType    Type = "UTP "
	SoundType        Type = "UTS "
	TriggerType      Type = "UTT "
	WaypointType     Type = "UTW "
)

var ErrBadType = errors.New("bad type tag")

var known = []Type{
	AreaType, BioCreatureType, CreatureType, DialogType, DoorType,
	EncounterType, FactionType, GameInstanceType, GameCommentType,
	GUIType, ItemType, JournalType, ModuleInfoType, MerchantType,
	PaletteType, PlaceableType, SoundType, TriggerType, WaypointType,
}

// ParseType normalizes a type tag: upper case, space padded to 4 bytes.
func ParseType(v string) (Type, error) {
	v = strings.TrimRight(v, " \x00")
	if v == "" || len(v) > 4 {
		return "", fmt.Errorf("%w: %q", ErrBadType, v)
	}
	return Type(strings.ToUpper(v) + strings.Repeat(" ", 4-len(v))), nil
}

// ForFile guesses the type tag of a file from its suffix, so
// "nw_guard.utc" gives CreatureType. Unknown suffixes are an error.
func ForFile(name string) (Type, error) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no suffix", ErrBadType, name)
	}
	t, err := ParseType(ext)
	if err != nil {
		return "", err
	}
	if !t.Known() {
		return "", fmt.Errorf("%w: unknown suffix %q", ErrBadType, ext)
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

// Known reports whether t is one of the tags this package names.
func (t Type) Known() bool {
	return slices.Contains(known, t)
}

// Suffix returns the file extension for this type (including the dot).
func (t Type) Suffix() string {
	s := strings.TrimRight(string(t), " ")
	if s == "" {
		return ""
	}
	return "." + strings.ToLower(s)
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	pt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = pt
	return nil
}

// AllTypes returns the known type tags.
func AllTypes() []Type {
	return slices.Clone(known)
}
