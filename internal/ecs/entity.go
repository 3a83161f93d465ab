package ecs

import (
	"errors"
	"fmt"
)

// EntityID uniquely identifies a game object registered in a World.
type EntityID uint64

// NilEntity is the zero value; no registered object has this ID.
const NilEntity EntityID = 0

// ComponentType is the capability kind a component is stored under.
// An object holds at most one component per kind.
type ComponentType uint8

const (
	CInput ComponentType = iota
	CBehavior
	CPhysics
	CRender

	numComponentTypes
)

// componentOrder is the fixed order in which kinds are visited when
// broadcasting or scanning a phase.
var componentOrder = [numComponentTypes]ComponentType{CInput, CBehavior, CPhysics, CRender}

func (t ComponentType) String() string {
	switch t {
	case CInput:
		return "input"
	case CBehavior:
		return "behavior"
	case CPhysics:
		return "physics"
	case CRender:
		return "render"
	}
	return fmt.Sprintf("ComponentType(%d)", uint8(t))
}

// Valid reports whether t is one of the known capability kinds.
func (t ComponentType) Valid() bool { return t < numComponentTypes }

// Phase is the point in the frame at which a component is invoked.
type Phase uint8

const (
	PhasePreUpdate  Phase = iota // input
	PhaseUpdate                  // generic behaviour, after the object's own update
	PhasePostUpdate              // physics synchronization
	PhasePreRender
	PhaseRender
	PhasePostRender
	PhaseManual // never invoked by the traversal
)

// UpdatePhases are the phases run by the logic pass, in order.
var UpdatePhases = []Phase{PhasePreUpdate, PhaseUpdate, PhasePostUpdate}

// RenderPhases are the phases run by the render pass, in order.
var RenderPhases = []Phase{PhasePreRender, PhaseRender, PhasePostRender}

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhasePreRender:
		return "pre-render"
	case PhaseRender:
		return "render"
	case PhasePostRender:
		return "post-render"
	case PhaseManual:
		return "manual"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Message is an opaque tag broadcast to every component of an object.
type Message int

// Component is implemented by every capability attached to a GameObject.
//
// Receive is called for every message sent to the owner, including kinds
// the component does not care about; those must be ignored.
type Component interface {
	Type() ComponentType
	Phase() Phase
	Update(dt float64, owner *GameObject) error
	Receive(msg Message, payload any)
}

var (
	ErrDuplicateComponent   = errors.New("ecs: component kind already attached")
	ErrComponentNotFound    = errors.New("ecs: component kind not attached")
	ErrUnknownComponentType = errors.New("ecs: unknown component kind")
	ErrObjectNotRegistered  = errors.New("ecs: object not registered")
	ErrObjectRegistered     = errors.New("ecs: object already registered")
)
