package abc

import (
	"fmt"
	"strings"
)

// Key selects a major key signature.
type Key int

// Major keys.
const (
	KeyC Key = iota
	KeyG
	KeyD
	KeyA
	KeyE
	KeyB
	KeyFs
	KeyF
	KeyBb
	KeyEb
	KeyAb
	KeyDb
	KeyGb
)

// NumKeys is the number of supported keys.
const NumKeys = int(KeyGb) + 1

// signature lists the letters a key alters and the direction:
// +1 sharpens, -1 flattens.
type signature struct {
	name    string
	letters string
	dir     int
}

var signatures = [NumKeys]signature{
	KeyC:  {"C", "", 0},
	KeyG:  {"G", "F", 1},
	KeyD:  {"D", "FC", 1},
	KeyA:  {"A", "FCG", 1},
	KeyE:  {"E", "FCGD", 1},
	KeyB:  {"B", "FCGDA", 1},
	KeyFs: {"F#", "FCGDAE", 1},
	KeyF:  {"F", "B", -1},
	KeyBb: {"Bb", "BE", -1},
	KeyEb: {"Eb", "BEA", -1},
	KeyAb: {"Ab", "BEAD", -1},
	KeyDb: {"Db", "BEADG", -1},
	KeyGb: {"Gb", "BEADGC", -1},
}

// IsValid indicates the key is one of the supported keys.
func (k Key) IsValid() bool {
	return k >= 0 && int(k) < NumKeys
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return signatures[k].name
}

// Set implements flag.Value.
func (k *Key) Set(s string) error {
	key, err := ParseKey(s)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// Letters returns the letters altered by the key signature in the order
// accidentals are written.
func (k Key) Letters() []Letter {
	if !k.IsValid() {
		return nil
	}
	s := signatures[k].letters
	letters := make([]Letter, len(s))
	for n := 0; n < len(s); n++ {
		letters[n] = Letter(s[n])
	}
	return letters
}

// Direction is +1 for sharp keys, -1 for flat keys and 0 for C major.
func (k Key) Direction() int {
	if !k.IsValid() {
		return 0
	}
	return signatures[k].dir
}

// Adjust returns the semitone adjustment the key signature applies to a
// natural letter: +1, -1 or 0.
func (k Key) Adjust(l Letter) int {
	if !k.IsValid() || !l.IsNote() {
		return 0
	}
	sig := &signatures[k]
	if strings.IndexByte(sig.letters, byte(l)) < 0 {
		return 0
	}
	return sig.dir
}

// Keys lists all supported keys.
func Keys() []Key {
	keys := make([]Key, NumKeys)
	for n := range keys {
		keys[n] = Key(n)
	}
	return keys
}

// ParseKey parses a key name like "G", "F#", "Fs", "Bb" or "E♭".
// A trailing "major" or "-dur" is accepted.
func ParseKey(s string) (Key, error) {
	name := strings.TrimSpace(s)
	lower := strings.ToLower(name)
	for _, suffix := range []string{"major", "maj", "-dur", "dur"} {
		if strings.HasSuffix(lower, suffix) {
			name = strings.TrimSpace(name[:len(name)-len(suffix)])
			break
		}
	}
	name = strings.NewReplacer("♯", "#", "♭", "b").Replace(name)
	if len(name) == 2 && name[1] == 's' {
		name = name[:1] + "#"
	}
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	for n := range signatures {
		if signatures[n].name == name {
			return Key(n), nil
		}
	}
	return KeyC, fmt.Errorf("unknown key %q", s)
}
