package content

import (
	_ "embed"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultsTOML string

type catalogue struct {
	Projects []Project `toml:"projects"`
	Posts    []Post    `toml:"posts"`
}

var loadDefaults = sync.OnceValue(func() catalogue {
	var c catalogue
	if _, err := toml.Decode(defaultsTOML, &c); err != nil {
		panic("content: embedded defaults: " + err.Error())
	}
	return c
})

func defaultProjects() []Project {
	src := loadDefaults().Projects
	out := make([]Project, len(src))
	for i, p := range src {
		p.Tags = slices.Clone(p.Tags)
		out[i] = p
	}
	return out
}

func defaultPosts() []Post {
	return slices.Clone(loadDefaults().Posts)
}
