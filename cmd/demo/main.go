package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/gesturex"
	"github.com/comalice/gesturex/builder"
	"github.com/comalice/gesturex/internal/extensibility"
	"github.com/comalice/gesturex/internal/production"
)

// gestures is the input played back, one per cycle, offset to the clock.
var gestures = [][]gesturex.PointerEvent{
	tap(),
	drag(),
	hold(),
	flick(),
}

func at(typ gesturex.EventType, id int, x, y float64, ms int) gesturex.PointerEvent {
	p := gesturex.Pt(x, y)
	return gesturex.PointerEvent{Type: typ, PointerID: id, Position: p, Absolute: p, Time: time.Duration(ms) * time.Millisecond}
}

func tap() []gesturex.PointerEvent {
	return []gesturex.PointerEvent{
		at(gesturex.PointerDown, 1, 100, 100, 0),
		at(gesturex.PointerUp, 1, 101, 100, 80),
	}
}

func drag() []gesturex.PointerEvent {
	return []gesturex.PointerEvent{
		at(gesturex.PointerDown, 1, 100, 100, 0),
		at(gesturex.PointerMove, 1, 105, 120, 16),
		at(gesturex.PointerMove, 1, 110, 160, 32),
		at(gesturex.PointerMove, 1, 112, 220, 48),
		at(gesturex.PointerUp, 1, 112, 240, 64),
	}
}

func hold() []gesturex.PointerEvent {
	return []gesturex.PointerEvent{
		at(gesturex.PointerDown, 1, 100, 100, 0),
		at(gesturex.PointerUp, 1, 100, 100, 900),
	}
}

func flick() []gesturex.PointerEvent {
	return []gesturex.PointerEvent{
		at(gesturex.PointerDown, 1, 100, 100, 0),
		at(gesturex.PointerMove, 1, 140, 102, 10),
		at(gesturex.PointerMove, 1, 200, 104, 20),
		at(gesturex.PointerUp, 1, 260, 105, 30),
	}
}

func main() {
	b := gesturex.NewBuilder("list-row", 1)
	b.Gesture("tap", gesturex.Tap).Config(builder.New(builder.MaxDuration(300 * time.Millisecond)))
	b.Gesture("hold", gesturex.LongPress).Config(builder.New(builder.MinDuration(500*time.Millisecond), builder.MaxDist(8)))
	b.Gesture("swipe", gesturex.Fling).Config(builder.New(builder.Direction(gesturex.Left | gesturex.Right)))
	b.Gesture("scroll", gesturex.Pan).Config(builder.New(builder.ActiveOffsetY(-10, 10), builder.FailOffsetX(-20, 20)))
	b.Exclusive("hold", "tap")
	b.Simultaneous("swipe", "scroll")
	config, err := b.Build()
	if err != nil {
		panic(err)
	}

	persister, err := production.NewJSONPersister("/tmp")
	if err != nil {
		panic(err)
	}

	publishChan := make(chan production.PublishedEvent, 100)
	publisher := production.NewChannelPublisher(config.ID, publishChan)
	filtered, err := extensibility.NewFilterSink(publisher, "record == gesture")
	if err != nil {
		panic(err)
	}

	root := gesturex.NewRoot(
		gesturex.WithID(config.ID),
		gesturex.WithSink(extensibility.NewLoggingSink(filtered)),
		gesturex.WithPersister(persister),
		gesturex.WithVisualizer(&production.DefaultVisualizer{}),
	)
	if err := root.Apply(config); err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := extensibility.NewChannelEventSource(make(chan gesturex.PointerEvent, 64))
	clock := extensibility.NewClockSource(16 * time.Millisecond)
	defer clock.Stop()
	done := make(chan int)
	go func() {
		done <- extensibility.Pump(ctx, events, clock.Ticks(),
			func(ev gesturex.PointerEvent) { root.FeedPointerEvent(ev) },
			root.Tick)
	}()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-ticker.C:
			fmt.Printf("\n--- Cycle %d ---\n", cycles+1)
			play(events, clock, gestures[cycles%len(gestures)])
			// Give the long press time to elapse on the clock.
			time.Sleep(time.Second)
			fmt.Println("DOT:\n" + root.Visualize())
			drain(publishChan)
			cycles++
			if cycles >= 8 {
				if err := root.Save(ctx); err != nil {
					fmt.Printf("Save error: %v\n", err)
				}
				events.Close()
				fmt.Printf("Demo complete after %d cycles, %d events fed.\n", cycles, <-done)
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}

// play sends a gesture in real time, rebased on the clock.
func play(src *extensibility.ChannelEventSource, clock *extensibility.ClockSource, gesture []gesturex.PointerEvent) {
	base := clock.Now()
	var prev time.Duration
	for _, ev := range gesture {
		time.Sleep(ev.Time - prev)
		prev = ev.Time
		ev.Time += base
		if !src.Send(ev) {
			fmt.Printf("Send error: queue full, dropped %s\n", ev.Type)
		}
	}
}

func drain(ch <-chan production.PublishedEvent) {
	for {
		select {
		case pub := <-ch:
			if g := pub.Gesture; g != nil {
				fmt.Printf("Published #%d: %s %s translation=(%.0f,%.0f)\n",
					pub.Metadata.Sequence, g.Kind, g.State, g.Data.Translation.X, g.Data.Translation.Y)
			}
		default:
			return
		}
	}
}
