// Package luajs hosts script interpreters inside a Go program.
//
// Each State wraps one interpreter context, identified by a name that is
// unique within its registry. Scripts run either synchronously (DoStringSync)
// or asynchronously (DoString, which returns a Future). Both calling
// conventions feed the same per-State FIFO queue, drained by a single worker
// goroutine, so a context never runs two scripts at once while different
// States run in parallel.
//
//	L, err := luajs.New(luajs.WithName("lua1"))
//	if err != nil {
//		return err
//	}
//	defer L.Close()
//
//	v, err := L.DoStringSync("return 5 * 5;") // v == float64(25)
package luajs
