//go:build unix

package wlr

import (
	"errors"
	"fmt"

	wl "deedles.dev/wl/client"
	"github.com/rs/zerolog"
)

var (
	ErrNoSeat        = errors.New("compositor advertises no seat")
	ErrNoDataControl = errors.New("compositor advertises no data-control manager")
)

type global struct {
	name    uint32
	version uint32
}

// preset discovers and binds the seat and data-control globals.
type preset struct {
	client   *wl.Client
	registry *wl.Registry
	seat     *wl.Seat
	manager  *Manager
	device   *Device
	logger   zerolog.Logger

	seatGlobal *global
	managers   map[Protocol]global
}

func newPreset(client *wl.Client, log zerolog.Logger) *preset {
	return &preset{
		client:   client,
		logger:   log.With().Str("component", "preset").Logger(),
		managers: make(map[Protocol]global, 2),
	}
}

func (ws *preset) Global(name uint32, inter string, version uint32) {
	switch inter {
	case wl.SeatInterface:
		if ws.seatGlobal == nil {
			ws.seatGlobal = &global{name: name, version: version}
		}
	case ExtDataControl.String():
		ws.managers[ExtDataControl] = global{name: name, version: version}
	case WlrDataControl.String():
		ws.managers[WlrDataControl] = global{name: name, version: version}
	}
}

func (ws *preset) GlobalRemove(uint32) {}

// protocol picks the ext family when both are advertised.
func (ws *preset) protocol() (Protocol, global, bool) {
	for _, p := range []Protocol{ExtDataControl, WlrDataControl} {
		if g, ok := ws.managers[p]; ok {
			return p, g, true
		}
	}
	return Protocol{}, global{}, false
}

func (ws *preset) Setup() error {
	ws.registry = ws.client.Display().GetRegistry()
	ws.registry.Listener = ws

	if err := ws.client.RoundTrip(); err != nil {
		return fmt.Errorf("round trip: %w", err)
	}
	if ws.seatGlobal == nil {
		return ErrNoSeat
	}

	proto, g, ok := ws.protocol()
	if !ok {
		return ErrNoDataControl
	}

	ws.seat = wl.BindSeat(ws.client, ws.registry, ws.seatGlobal.name, ws.seatGlobal.version)
	ws.manager = BindManager(ws.client, ws.registry, proto, g.name, g.version)
	ws.device = ws.manager.GetDataDevice(ws.seat)

	ws.logger.Trace().
		Stringer("protocol", proto).
		Uint32("version", ws.manager.Version()).
		Msg("data control bound")

	return nil
}
