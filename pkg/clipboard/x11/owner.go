package x11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/labi-le/clipdrop/pkg/ctxlog"
	"github.com/rs/zerolog"
)

// maxPropSize is the largest payload written in one property change.
// Anything bigger goes through INCR.
const maxPropSize = 0x10000

var errConnClosed = errors.New("x connection closed")

type incrKey struct {
	window   xproto.Window
	property xproto.Atom
}

type incrTransfer struct {
	target xproto.Atom
	data   []byte
	offset int
}

// owner holds CLIPBOARD on its own connection and an unmapped window.
// All of its state is touched only by the goroutine running serve.
type owner struct {
	conn     *xgb.Conn
	win      xproto.Window
	atoms    *atomCache
	acquired xproto.Timestamp

	names   []string
	served  []xproto.Atom
	targets map[xproto.Atom][]byte
	incr    map[incrKey]*incrTransfer

	logger    zerolog.Logger
	closeOnce sync.Once
}

func newOwner(payloads map[string][]byte, log zerolog.Logger) (*owner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("xgb connect: %w", err)
	}

	o := &owner{
		conn:    conn,
		names:   slices.Sorted(maps.Keys(payloads)),
		targets: make(map[xproto.Atom][]byte, len(payloads)),
		incr:    make(map[incrKey]*incrTransfer),
		logger:  log,
	}
	if err := o.init(payloads); err != nil {
		conn.Close()
		return nil, err
	}
	return o, nil
}

func (o *owner) init(payloads map[string][]byte) error {
	var err error
	if o.atoms, err = loadAtoms(o.conn); err != nil {
		return fmt.Errorf("load atoms: %w", err)
	}

	if o.served, err = internAtoms(o.conn, o.names...); err != nil {
		return fmt.Errorf("load targets: %w", err)
	}
	for i, name := range o.names {
		o.targets[o.served[i]] = payloads[name]
	}

	screen := xproto.Setup(o.conn).DefaultScreen(o.conn)
	if o.win, err = xproto.NewWindowId(o.conn); err != nil {
		return err
	}

	err = xproto.CreateWindowChecked(
		o.conn,
		screen.RootDepth,
		o.win,
		screen.Root,
		0,
		0,
		1,
		1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange},
	).Check()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	return nil
}

// acquire claims CLIPBOARD with a real server timestamp and confirms the
// server agrees we own it.
func (o *owner) acquire() error {
	ts, err := o.serverTime()
	if err != nil {
		return fmt.Errorf("server time: %w", err)
	}

	err = xproto.SetSelectionOwnerChecked(o.conn, o.win, o.atoms.Clipboard, ts).Check()
	if err != nil {
		return fmt.Errorf("set selection owner: %w", err)
	}

	reply, err := xproto.GetSelectionOwner(o.conn, o.atoms.Clipboard).Reply()
	if err != nil {
		return fmt.Errorf("get selection owner: %w", err)
	}
	if reply.Owner != o.win {
		return ErrNotOwner
	}

	o.acquired = ts
	return nil
}

// serverTime appends nothing to a property of our window; the resulting
// PropertyNotify carries the current server time.
func (o *owner) serverTime() (xproto.Timestamp, error) {
	xproto.ChangeProperty(o.conn, xproto.PropModeAppend, o.win, o.atoms.LocalProp, xproto.AtomString, 8, 0, nil)

	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			return 0, errConnClosed
		}
		if err != nil {
			return 0, err
		}

		if e, ok := ev.(xproto.PropertyNotifyEvent); ok && e.Window == o.win && e.Atom == o.atoms.LocalProp {
			return e.Time, nil
		}
	}
}

func (o *owner) serve() {
	log := ctxlog.Op(o.logger, "x11.Serve")
	log.Debug().Strs("targets", o.names).Msg("owning clipboard")

	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			log.Debug().Msg("connection closed")
			return
		}
		if err != nil {
			log.Trace().Err(err).Msg("x error")
			continue
		}

		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.handleRequest(e)
		case xproto.SelectionClearEvent:
			if e.Selection == o.atoms.Clipboard {
				log.Debug().Msg("ownership lost")
				return
			}
		case xproto.PropertyNotifyEvent:
			if e.State == xproto.PropertyDelete {
				o.continueIncr(e)
			}
		}
	}
}

func (o *owner) close() {
	o.closeOnce.Do(o.conn.Close)
}

func (o *owner) handleRequest(e xproto.SelectionRequestEvent) {
	resp := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  xproto.AtomNone,
	}

	// obsolete requestors leave the property unset
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}

	switch {
	case e.Selection != o.atoms.Clipboard:

	case e.Target == o.atoms.Targets:
		list := append([]xproto.Atom{o.atoms.Targets, o.atoms.Timestamp}, o.served...)
		buf := make([]byte, 0, 4*len(list))
		for _, a := range list {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(a))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, xproto.AtomAtom, 32, uint32(len(list)), buf)
		resp.Property = prop

	case e.Target == o.atoms.Timestamp:
		buf := binary.LittleEndian.AppendUint32(nil, uint32(o.acquired))
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, prop, xproto.AtomInteger, 32, 1, buf)
		resp.Property = prop

	default:
		if data, ok := o.targets[e.Target]; ok {
			o.sendData(e.Requestor, prop, e.Target, data)
			resp.Property = prop
		}
	}

	o.logger.Trace().
		Uint32("requestor", uint32(e.Requestor)).
		Uint32("target", uint32(e.Target)).
		Bool("refused", resp.Property == xproto.AtomNone).
		Msg("selection request")

	xproto.SendEvent(o.conn, false, e.Requestor, xproto.EventMaskNoEvent, string(resp.Bytes()))
}

func (o *owner) sendData(requestor xproto.Window, prop, target xproto.Atom, data []byte) {
	if len(data) <= maxPropSize {
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, requestor, prop, target, 8, uint32(len(data)), data)
		return
	}

	// deletions of prop on the requestor drive the following chunks
	xproto.ChangeWindowAttributes(o.conn, requestor, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange})

	size := binary.LittleEndian.AppendUint32(nil, uint32(len(data)))
	xproto.ChangeProperty(o.conn, xproto.PropModeReplace, requestor, prop, o.atoms.Incr, 32, 1, size)

	o.incr[incrKey{window: requestor, property: prop}] = &incrTransfer{target: target, data: data}
}

func (o *owner) continueIncr(e xproto.PropertyNotifyEvent) {
	key := incrKey{window: e.Window, property: e.Atom}
	t, ok := o.incr[key]
	if !ok {
		return
	}

	end := min(t.offset+maxPropSize, len(t.data))
	chunk := t.data[t.offset:end]
	t.offset = end

	xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Window, e.Atom, t.target, 8, uint32(len(chunk)), chunk)

	if len(chunk) == 0 {
		delete(o.incr, key)
		o.logger.Trace().Int("size", len(t.data)).Msg("incr transfer complete")
	}
}
