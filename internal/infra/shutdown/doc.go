// Package shutdown runs cleanup hooks when the process is interrupted.
//
// The interactive shell blocks on terminal input, so an interrupt cannot
// simply cancel a context and wait for the loop to notice. Instead the
// shell registers hooks (saving history, stopping the config watcher)
// and main exits once they have run:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	go func() {
//		_ = h.Wait()
//		os.Exit(130)
//	}()
package shutdown
