package introspect_test

import (
	"errors"
	"strings"
)

type Address struct {
	Street string
	City   string `bean:"town"`
	Secret string `bean:"-"`
	Zip    string `bean:",readonly"`
}

type Audit struct {
	Created string
}

type Person struct {
	Audit

	Name    string
	Age     int
	Home    *Address
	Tags    []string
	Grid    [3]int
	Attrs   map[string]string
	private int

	nickname string
	scores   []int
	labels   map[string]int
	active   bool
}

func (p *Person) GetNickname() string  { return strings.ToUpper(p.nickname) }
func (p *Person) SetNickname(v string) { p.nickname = v }

func (p *Person) IsActive() bool   { return p.active }
func (p *Person) SetActive(v bool) { p.active = v }

func (p *Person) GetScore(i int) int    { return p.scores[i] }
func (p *Person) SetScore(i int, v int) { p.scores[i] = v }
func (p *Person) GetLabel(k string) int { return p.labels[k] }
func (p *Person) SetLabel(k string, v int) {
	if p.labels == nil {
		p.labels = map[string]int{}
	}

	p.labels[k] = v
}

var errRejected = errors.New("rejected")

func (p *Person) SetAge(v int) error {
	if v < 0 {
		return errRejected
	}

	p.Age = v

	return nil
}

// mismatched setter type is ignored
func (p *Person) SetName(v int) {}

type Builder struct {
	size  int
	color string
}

func (b *Builder) WithSize(v int) *Builder       { b.size = v; return b }
func (b *Builder) WithColor(v string) *Builder   { b.color = v; return b }
func (b *Builder) GetSize() int                  { return b.size }
func (b *Builder) GetColor() string              { return b.color }
func (b *Builder) WithNothing(a, c int) *Builder { return b }
