package page

import (
	"context"
)

// Run executes cmds and every command their completions lead to, applying
// completions to p one at a time in arrival order. It returns once no command
// is outstanding, or with ctx's error when ctx is done first.
//
// Front ends without their own event loop (the web server, the scripting
// commands) use Run; the terminal page feeds completions through its own loop.
func Run(ctx context.Context, p *Page, cmds ...Cmd) error {
	results := make(chan Msg)
	pending := 0

	start := func(cmds []Cmd) {
		for _, cmd := range cmds {
			if cmd == nil {
				continue
			}
			pending++
			go func(cmd Cmd) {
				msg := cmd(ctx)
				select {
				case results <- msg:
				case <-ctx.Done():
				}
			}(cmd)
		}
	}

	start(cmds)
	for pending > 0 {
		select {
		case msg := <-results:
			pending--
			start(p.Update(msg))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
