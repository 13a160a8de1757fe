package recursive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name     string
		path     Path
		str      string
		location string
	}{
		{name: "root", path: nil, str: "<root>", location: ""},
		{name: "field", path: Path{"name"}, str: "name", location: "name"},
		{name: "nested", path: Path{"home", "address", "number"}, str: "home.address.number", location: "home.address.number"},
		{name: "element", path: Path{"friends", "[0]", "name"}, str: "friends[0].name", location: "friends.name"},
		{name: "root element", path: Path{"[3]"}, str: "[3]", location: ""},
		{name: "bracketed key", path: Path{"m", "[a]"}, str: "m.[a]", location: "m.[a]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.path.String())
			assert.Equal(t, tt.location, tt.path.Location())
		})
	}
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	parent := make(Path, 1, 4)
	parent[0] = "a"
	left := parent.child("b")
	right := parent.child("c")

	assert.Equal(t, Path{"a", "b"}, left)
	assert.Equal(t, Path{"a", "c"}, right)
	assert.Equal(t, Path{"a", "[2]"}, parent.element(2))
}

func TestPath_Key(t *testing.T) {
	tests := []struct {
		key          any
		wantString   string
		wantLocation string
	}{
		{key: "name", wantString: "user.name", wantLocation: "user.name"},
		{key: 7, wantString: "user.7", wantLocation: "user.7"},
		{key: "a.b", wantString: `user."a.b"`, wantLocation: `user."a.b"`},
		{key: "[0]", wantString: `user."[0]"`, wantLocation: `user."[0]"`},
		{key: "", wantString: `user.""`, wantLocation: `user.""`},
	}

	for _, tt := range tests {
		p := Path{"user"}.key(tt.key)
		assert.Equal(t, tt.wantString, p.String())
		assert.Equal(t, tt.wantLocation, p.Location())
	}
}

func TestDifference_String(t *testing.T) {
	d := Difference{Path: Path{"name"}, Actual: "John", Other: "Jack"}
	assert.Equal(t, "field/property 'name' differ: actual value: John, expected value: Jack", d.String())

	d.AdditionalInformation = "note"
	assert.Equal(t, "field/property 'name' differ: actual value: John, expected value: Jack (note)", d.String())
}
