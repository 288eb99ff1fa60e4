package operation

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Script owns the Lua state backing user-defined operations.
// The state must stay open for as long as the registered operations
// may be invoked. Not safe for concurrent use.
type Script struct {
	path string
	L    *lua.LState
}

// LoadScript runs a Lua script that registers custom operations.
//
// The script is given a global register(name, fn) function; fn receives
// two numbers and must return a number. Registered operations are added
// to the registry and live until the returned Script is closed.
func (r *Registry) LoadScript(path string) (*Script, error) {
	s := &Script{
		path: path,
		L:    lua.NewState(),
	}

	s.L.SetGlobal("register", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)
		r.Register(Operation{
			Name:   Kind(name),
			Symbol: name,
			Help:   fmt.Sprintf("Custom operation from %s", path),
			Fn:     s.operationFunc(fn),
		})
		return 0
	}))

	if err := s.L.DoFile(path); err != nil {
		s.L.Close()
		return nil, fmt.Errorf("loading operations script %s: %w", path, err)
	}
	return s, nil
}

// Close releases the Lua state. Operations registered by the script
// must not be invoked after Close.
func (s *Script) Close() {
	if s.L != nil {
		s.L.Close()
		s.L = nil
	}
}

// Path returns the script path.
func (s *Script) Path() string { return s.path }

// operationFunc wraps a Lua function as an operation Func.
// Lua runtime errors surface as ErrInvalidArgument.
func (s *Script) operationFunc(fn *lua.LFunction) Func {
	return func(a, b float64) (float64, error) {
		err := s.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(a), lua.LNumber(b))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}

		ret := s.L.Get(-1)
		s.L.Pop(1)

		n, ok := ret.(lua.LNumber)
		if !ok {
			return 0, fmt.Errorf("%w: script returned %s, want number", ErrInvalidArgument, ret.Type())
		}
		return float64(n), nil
	}
}
