// Command arenasim runs the battle-arena scene coordinator headlessly: no
// window, no GPU, just the fixed-step simulation driven at a wall-clock
// cadence, with Prometheus metrics exposed over HTTP for observation.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hungaromakker/battlearena/internal/building"
	"github.com/hungaromakker/battlearena/internal/hexprism"
	"github.com/hungaromakker/battlearena/internal/player"
	"github.com/hungaromakker/battlearena/internal/scene"
	"github.com/hungaromakker/battlearena/internal/telemetry"
)

func main() {
	seed := flag.Int64("seed", 1, "voxel noise seed")
	ticks := flag.Int("ticks", 0, "number of real-time frames to run before exiting (0 = run until interrupted)")
	tickRate := flag.Duration("tick-rate", time.Second/60, "wall-clock duration of one real frame")
	metricsAddr := flag.String("metrics-addr", ":9090", "address to serve /metrics on (empty disables)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := telemetry.NewDefaultLogger("arenasim", *debug)
	metrics := telemetry.NewMetrics(nil)

	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("metrics server stopped: %v", err)
			}
		}()
		log.Infof("serving metrics on %s/metrics", *metricsAddr)
	}

	c := scene.NewCoordinator(*seed, log, metrics)
	defer c.Close()
	seedDemoArena(c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("arenasim starting: seed=%d tick-rate=%s", *seed, *tickRate)
	runLoop(ctx, c, *tickRate, *ticks, log)
	log.Infof("arenasim stopped")
}

// runLoop drives the coordinator at tickRate until ctx is cancelled or
// maxTicks frames have run (0 means unbounded).
func runLoop(ctx context.Context, c *scene.Coordinator, tickRate time.Duration, maxTicks int, log telemetry.Logger) {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	frame := 0
	dt := float32(tickRate.Seconds())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(dt)
			for _, ev := range c.DrainExplosionEvents() {
				log.Debugf("explosion at %v embers=%d", ev.Position, ev.EmberCount)
			}
			frame++
			if maxTicks > 0 && frame >= maxTicks {
				return
			}
		}
	}
}

// seedDemoArena builds a small representative scene: a walkable ground
// island, a hex-prism wall, and a cluster of destructible blocks, so the
// headless driver has something to simulate against out of the box.
func seedDemoArena(c *scene.Coordinator) {
	c.Ground = player.Ground{
		Islands: []player.Island{
			{Center: mgl32.Vec3{0, 0, 0}, Radius: 40, SurfaceY: 0},
		},
		KillY:      -100,
		RespawnPos: mgl32.Vec3{0, 2, 0},
	}
	c.Player.Position = mgl32.Vec3{0, 2, 10}

	for q := int32(0); q < 6; q++ {
		for level := int32(0); level < 3; level++ {
			c.HexGrid.Insert(hexprism.Axial{Q: q, R: 4, Level: level}, 1)
		}
	}

	id := uint32(1)
	for x := -2; x <= 2; x++ {
		for y := 0; y < 3; y++ {
			c.Blocks.Add(building.Block{
				ID:       id,
				Position: mgl32.Vec3{float32(x) * 1.1, float32(y)*1.1 + 0.55, 4},
				Shape:    building.CubeShape(mgl32.Vec3{0.5, 0.5, 0.5}),
				Material: 2,
				HP:       100,
				MaxHP:    100,
			})
			id++
		}
	}
}
