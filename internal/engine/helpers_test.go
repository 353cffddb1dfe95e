package engine

import (
	"github.com/easychair/vampire-sub000/internal/container"
	"github.com/easychair/vampire-sub000/internal/index"
	"github.com/easychair/vampire-sub000/internal/ordering"
	"github.com/easychair/vampire-sub000/internal/term"
)

// newTestContext builds a Context sharing f, over a KBO ordering
// ranked by the given symbol order (later symbols outrank earlier
// ones). funcSyms/predSyms must be the exact Symbol values f.Intern
// returned, since Precedence ranks by Symbol.ID.
func newTestContext(f *term.Factory, funcSyms, predSyms []term.Symbol) *Context {
	prec := ordering.NewPrecedence(funcSyms, predSyms, ordering.PrecedenceOptions{}, 1)
	kbo := ordering.NewKBO(prec)
	active := container.NewActive()
	return &Context{
		Factory:  f,
		Ordering: kbo,
		Indexes:  index.NewManager(active, nil),
		Active:   active,
	}
}
