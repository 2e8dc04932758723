package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErasesLifetimes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"&'a str", "&str"},
		{"& 'static mut Foo", "&mut Foo"},
		{"Rc < RefCell < Foo > >", "Rc<RefCell<Foo>>"},
		{"&mut Rc<RefCell<Foo>>", "&mut Rc<RefCell<Foo>>"},
		{"Vec< i32 >", "Vec<i32>"},
		{"(A,B)", "(A, B)"},
		{"*const Foo", "*const Foo"},
		{"std::result::Result<Foo, String>", "std::result::Result<Foo, String>"},
		{"()", "()"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "input %q", c.in)
	}
}

func TestParseEquivalentSpellings(t *testing.T) {
	a := Parse("& 'x Rc<RefCell<Foo> >")
	b := Parse("&Rc<RefCell<Foo>>")
	assert.Equal(t, a.Normalized, b.Normalized)
	assert.NotEqual(t, a.Raw, b.Raw)
}

func TestRefElem(t *testing.T) {
	elem, ok := Parse("&mut Foo").RefElem()
	assert.True(t, ok)
	assert.Equal(t, "Foo", elem.Normalized)

	elem, ok = Parse("&Box<Foo>").RefElem()
	assert.True(t, ok)
	assert.Equal(t, "Box<Foo>", elem.Normalized)

	_, ok = Parse("Foo").RefElem()
	assert.False(t, ok)
}

func TestNodeKeyDisplayStripsTag(t *testing.T) {
	key := KeyWithTag(Parse("jlong"), "Foo")
	assert.Equal(t, "jlong", key.Display())
	assert.Equal(t, "jlong#Foo", key.String())
	assert.NotEqual(t, key, KeyOf(Parse("jlong")))
}

func TestUnit(t *testing.T) {
	assert.True(t, Unit().IsUnit())
	assert.False(t, Parse("i32").IsUnit())
	assert.True(t, TypeExpr{}.IsZero())
}
