package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	targetURIList   = "text/uri-list"
	targetGnome     = "x-special/gnome-copied-files"
	targetUTF8      = "UTF8_STRING"
	targetPlainUTF8 = "text/plain;charset=utf-8"
)

type atomCache struct {
	Clipboard xproto.Atom
	Targets   xproto.Atom
	Timestamp xproto.Atom
	Incr      xproto.Atom
	LocalProp xproto.Atom
}

func internAtoms(c *xgb.Conn, names ...string) ([]xproto.Atom, error) {
	cookies := make([]xproto.InternAtomCookie, len(names))
	for i, name := range names {
		cookies[i] = xproto.InternAtom(c, false, uint16(len(name)), name)
	}

	atoms := make([]xproto.Atom, len(names))
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return nil, fmt.Errorf("intern %s: %w", names[i], err)
		}
		atoms[i] = reply.Atom
	}
	return atoms, nil
}

func loadAtoms(c *xgb.Conn) (*atomCache, error) {
	atoms, err := internAtoms(c, "CLIPBOARD", "TARGETS", "TIMESTAMP", "INCR", "CLIPDROP_SELECTION")
	if err != nil {
		return nil, err
	}

	return &atomCache{
		Clipboard: atoms[0],
		Targets:   atoms[1],
		Timestamp: atoms[2],
		Incr:      atoms[3],
		LocalProp: atoms[4],
	}, nil
}
