package stats

import "sync"

// Session is a running tick task. Stop cancels it and waits for the
// goroutine to exit, so no tick lands after Stop returns.
type Session struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func startSession(ticker TickerFunc, tick func()) *Session {
	s := &Session{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	ch, stopTicker := ticker(TickInterval)
	go func() {
		defer close(s.done)
		defer stopTicker()
		for {
			select {
			case <-s.stop:
				return
			case <-ch:
				select {
				case <-s.stop:
					return
				default:
				}
				tick()
			}
		}
	}()
	return s
}

// Stop cancels the session. It is safe to call more than once.
func (s *Session) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}
