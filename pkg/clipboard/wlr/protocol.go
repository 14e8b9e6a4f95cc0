//go:build unix

package wlr

import (
	"fmt"
	"os"

	wl "deedles.dev/wl/client"
	"deedles.dev/wl/wire"
)

// Protocol is one of the two wire-compatible data-control families.
// ext_data_control_v1 is the standardised successor of the wlroots
// zwlr_data_control_v1 and keeps its opcodes, so both share one binding.
type Protocol struct {
	prefix  string
	version uint32
}

var (
	ExtDataControl = Protocol{prefix: "ext_data_control", version: 1}
	WlrDataControl = Protocol{prefix: "zwlr_data_control", version: 2}
)

func (p Protocol) Interface(kind string) string {
	return p.prefix + "_" + kind + "_v1"
}

func (p Protocol) String() string { return p.Interface("manager") }

const (
	kindManager = "manager"
	kindDevice  = "device"
	kindSource  = "source"
	kindOffer   = "offer"
)

type object struct {
	proto   Protocol
	kind    string
	state   wire.State
	id      uint32
	version uint32

	// OnDelete is called when the object is removed from the tracking
	// system.
	OnDelete func()
}

func (obj *object) State() wire.State { return obj.state }
func (obj *object) ID() uint32        { return obj.id }
func (obj *object) SetID(id uint32)   { obj.id = id }
func (obj *object) Interface() string { return obj.proto.Interface(obj.kind) }
func (obj *object) Version() uint32   { return obj.version }
func (obj *object) String() string    { return fmt.Sprintf("%v(%v)", obj.Interface(), obj.id) }

func (obj *object) unknown(op uint16) error {
	return wire.UnknownOpError{Interface: obj.Interface(), Type: "event", Op: op}
}

func (obj *object) Delete() {
	if obj.OnDelete != nil {
		obj.OnDelete()
	}
}

func (obj *object) child(kind string) object {
	return object{proto: obj.proto, kind: kind, state: obj.state, version: obj.version}
}

// Manager creates per-seat data devices and data sources.
type Manager struct {
	object
}

func BindManager(state wire.State, registry wire.Binder, p Protocol, name, version uint32) *Manager {
	obj := &Manager{object{proto: p, kind: kindManager, state: state, version: min(version, p.version)}}
	state.Add(obj)
	registry.Bind(name, wire.NewID{Interface: obj.Interface(), Version: obj.version, ID: obj.ID()})
	return obj
}

func (obj *Manager) Dispatch(msg *wire.MessageBuffer) error {
	return obj.unknown(msg.Op())
}

func (obj *Manager) MethodName(op uint16) string {
	switch op {
	case 0:
		return "create_data_source"
	case 1:
		return "get_data_device"
	case 2:
		return "destroy"
	}

	return "unknown method"
}

func (obj *Manager) CreateDataSource() (id *Source) {
	builder := wire.NewMessage(obj, 0)

	id = &Source{object: obj.child(kindSource)}
	obj.state.Add(id)
	builder.WriteObject(id)

	builder.Method = "create_data_source"
	builder.Args = []any{id}
	obj.state.Enqueue(builder)
	return id
}

func (obj *Manager) GetDataDevice(seat *wl.Seat) (id *Device) {
	builder := wire.NewMessage(obj, 1)

	id = &Device{object: obj.child(kindDevice)}
	obj.state.Add(id)
	builder.WriteObject(id)
	builder.WriteObject(seat)

	builder.Method = "get_data_device"
	builder.Args = []any{id, seat}
	obj.state.Enqueue(builder)
	return id
}

func (obj *Manager) Destroy() {
	builder := wire.NewMessage(obj, 2)

	builder.Method = "destroy"
	builder.Args = []any{}
	obj.state.Enqueue(builder)
}

// DeviceListener receives selection events for a seat.
type DeviceListener interface {
	DataOffer(id *Offer)
	Selection(id *Offer)
	Finished()
	PrimarySelection(id *Offer)
}

// Device manages one seat's selections.
type Device struct {
	object

	// Listener's methods are called by incoming messages from the
	// remote end via Dispatch. If it is nil, messages are silently
	// ignored.
	Listener DeviceListener
}

func (obj *Device) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		id := &Offer{object: obj.child(kindOffer)}
		id.SetID(msg.ReadUint())
		obj.state.Add(id)

		if err := msg.Err(); err != nil {
			return err
		}
		if obj.Listener != nil {
			obj.Listener.DataOffer(id)
		}
		return nil

	case 1, 3:
		// a null id means the selection was cleared
		id, _ := obj.state.Get(msg.ReadUint()).(*Offer)

		if err := msg.Err(); err != nil {
			return err
		}
		if obj.Listener == nil {
			return nil
		}
		if msg.Op() == 1 {
			obj.Listener.Selection(id)
		} else {
			obj.Listener.PrimarySelection(id)
		}
		return nil

	case 2:
		if err := msg.Err(); err != nil {
			return err
		}
		if obj.Listener != nil {
			obj.Listener.Finished()
		}
		return nil
	}

	return obj.unknown(msg.Op())
}

func (obj *Device) MethodName(op uint16) string {
	switch op {
	case 0:
		return "set_selection"
	case 1:
		return "destroy"
	case 2:
		return "set_primary_selection"
	}

	return "unknown method"
}

// SetSelection makes source the seat's clipboard selection.
func (obj *Device) SetSelection(source *Source) {
	builder := wire.NewMessage(obj, 0)

	builder.WriteObject(source)

	builder.Method = "set_selection"
	builder.Args = []any{source}
	obj.state.Enqueue(builder)
}

func (obj *Device) Destroy() {
	builder := wire.NewMessage(obj, 1)

	builder.Method = "destroy"
	builder.Args = []any{}
	obj.state.Enqueue(builder)
}

// SourceListener serves transfer requests for an offered selection.
// Send owns fd and must close it.
type SourceListener interface {
	Send(mimeType string, fd *os.File)
	Cancelled()
}

// Source is the data we offer to other clients.
type Source struct {
	object

	Listener SourceListener
}

func (obj *Source) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		mimeType := msg.ReadString()
		fd := msg.ReadFile()

		if err := msg.Err(); err != nil {
			return err
		}
		if obj.Listener == nil {
			return fd.Close()
		}
		obj.Listener.Send(mimeType, fd)
		return nil

	case 1:
		if err := msg.Err(); err != nil {
			return err
		}
		if obj.Listener != nil {
			obj.Listener.Cancelled()
		}
		return nil
	}

	return obj.unknown(msg.Op())
}

func (obj *Source) MethodName(op uint16) string {
	switch op {
	case 0:
		return "offer"
	case 1:
		return "destroy"
	}

	return "unknown method"
}

// Offer advertises one MIME type. Must be called before the source is
// set as a selection.
func (obj *Source) Offer(mimeType string) {
	builder := wire.NewMessage(obj, 0)

	builder.WriteString(mimeType)

	builder.Method = "offer"
	builder.Args = []any{mimeType}
	obj.state.Enqueue(builder)
}

func (obj *Source) Destroy() {
	builder := wire.NewMessage(obj, 1)

	builder.Method = "destroy"
	builder.Args = []any{}
	obj.state.Enqueue(builder)
}

// Offer is a selection announced by the compositor. We never read from it,
// it is only tracked so it can be destroyed.
type Offer struct {
	object
}

func (obj *Offer) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		_ = msg.ReadString()
		return msg.Err()
	}

	return obj.unknown(msg.Op())
}

func (obj *Offer) MethodName(op uint16) string {
	switch op {
	case 0:
		return "receive"
	case 1:
		return "destroy"
	}

	return "unknown method"
}

func (obj *Offer) Destroy() {
	builder := wire.NewMessage(obj, 1)

	builder.Method = "destroy"
	builder.Args = []any{}
	obj.state.Enqueue(builder)
}
