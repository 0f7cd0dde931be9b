package luajs

// Lua C API constants, as defined by the Lua 5.3 headers.

// Thread status codes.
const (
	LUA_OK        = 0
	LUA_YIELD     = 1
	LUA_ERRRUN    = 2
	LUA_ERRSYNTAX = 3
	LUA_ERRMEM    = 4
	LUA_ERRGCMM   = 5
	LUA_ERRERR    = 6
)

// Basic type tags.
const (
	LUA_TNONE          = -1
	LUA_TNIL           = 0
	LUA_TBOOLEAN       = 1
	LUA_TLIGHTUSERDATA = 2
	LUA_TNUMBER        = 3
	LUA_TSTRING        = 4
	LUA_TTABLE         = 5
	LUA_TFUNCTION      = 6
	LUA_TUSERDATA      = 7
	LUA_TTHREAD        = 8

	LUA_NUMTAGS = 9
)

// LUA_MINSTACK is the minimum stack space available to a C function.
const LUA_MINSTACK = 20

// Arithmetic and comparison operators.
const (
	LUA_OPADD = 0
	LUA_OPSUB = 1
	LUA_OPMUL = 2
	LUA_OPMOD = 3
	LUA_OPPOW = 4
	LUA_OPDIV = 5
	LUA_OPUNM = 12

	LUA_OPEQ = 0
	LUA_OPLT = 1
	LUA_OPLE = 2
)

// Garbage collector options.
const (
	LUA_GCSTOP       = 0
	LUA_GCRESTART    = 1
	LUA_GCCOLLECT    = 2
	LUA_GCCOUNT      = 3
	LUA_GCCOUNTB     = 4
	LUA_GCSTEP       = 5
	LUA_GCSETPAUSE   = 6
	LUA_GCSETSTEPMUL = 7
	LUA_GCISRUNNING  = 9
)

// Debug hook events.
const (
	LUA_HOOKCALL     = 0
	LUA_HOOKRET      = 1
	LUA_HOOKLINE     = 2
	LUA_HOOKCOUNT    = 3
	LUA_HOOKTAILCALL = 4
)

// Constant is one named entry of the constants table.
type Constant struct {
	Name  string
	Value int
}

// Constants lists every exported Lua constant in declaration order.
var Constants = []Constant{
	{"LUA_OK", LUA_OK},
	{"LUA_YIELD", LUA_YIELD},
	{"LUA_ERRRUN", LUA_ERRRUN},
	{"LUA_ERRSYNTAX", LUA_ERRSYNTAX},
	{"LUA_ERRMEM", LUA_ERRMEM},
	{"LUA_ERRGCMM", LUA_ERRGCMM},
	{"LUA_ERRERR", LUA_ERRERR},

	{"LUA_TNONE", LUA_TNONE},
	{"LUA_TNIL", LUA_TNIL},
	{"LUA_TBOOLEAN", LUA_TBOOLEAN},
	{"LUA_TLIGHTUSERDATA", LUA_TLIGHTUSERDATA},
	{"LUA_TNUMBER", LUA_TNUMBER},
	{"LUA_TSTRING", LUA_TSTRING},
	{"LUA_TTABLE", LUA_TTABLE},
	{"LUA_TFUNCTION", LUA_TFUNCTION},
	{"LUA_TUSERDATA", LUA_TUSERDATA},
	{"LUA_TTHREAD", LUA_TTHREAD},
	{"LUA_NUMTAGS", LUA_NUMTAGS},

	{"LUA_MINSTACK", LUA_MINSTACK},

	{"LUA_OPADD", LUA_OPADD},
	{"LUA_OPSUB", LUA_OPSUB},
	{"LUA_OPMUL", LUA_OPMUL},
	{"LUA_OPDIV", LUA_OPDIV},
	{"LUA_OPMOD", LUA_OPMOD},
	{"LUA_OPPOW", LUA_OPPOW},
	{"LUA_OPUNM", LUA_OPUNM},
	{"LUA_OPEQ", LUA_OPEQ},
	{"LUA_OPLT", LUA_OPLT},
	{"LUA_OPLE", LUA_OPLE},

	{"LUA_GCSTOP", LUA_GCSTOP},
	{"LUA_GCRESTART", LUA_GCRESTART},
	{"LUA_GCCOLLECT", LUA_GCCOLLECT},
	{"LUA_GCCOUNT", LUA_GCCOUNT},
	{"LUA_GCCOUNTB", LUA_GCCOUNTB},
	{"LUA_GCSTEP", LUA_GCSTEP},
	{"LUA_GCSETPAUSE", LUA_GCSETPAUSE},
	{"LUA_GCSETSTEPMUL", LUA_GCSETSTEPMUL},
	{"LUA_GCISRUNNING", LUA_GCISRUNNING},

	{"LUA_HOOKCALL", LUA_HOOKCALL},
	{"LUA_HOOKRET", LUA_HOOKRET},
	{"LUA_HOOKLINE", LUA_HOOKLINE},
	{"LUA_HOOKCOUNT", LUA_HOOKCOUNT},
	{"LUA_HOOKTAILCALL", LUA_HOOKTAILCALL},
}

// LookupConstant returns the value of the named constant.
func LookupConstant(name string) (int, bool) {
	for _, c := range Constants {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}
