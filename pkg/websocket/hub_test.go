package websocket_test

import (
	"sync"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/stretchr/testify/require"

	"github.com/backsoul/agentquiz/pkg/websocket"
)

// El conteo de clientes se lee siempre bajo el lock del hub, incluso con
// registros concurrentes desde varias goroutines.
func TestHubClientCountConcurrente(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()

	const clientes = 8

	var wg sync.WaitGroup
	for i := 0; i < clientes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Register(&fastws.Conn{})
		}()
	}

	// Lecturas concurrentes mientras se registran los clientes
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = hub.ClientCount()
		}
	}()

	wg.Wait()
	<-done

	require.Eventually(t, func() bool {
		return hub.ClientCount() == clientes
	}, time.Second, 10*time.Millisecond)
}
