package tweakview

import (
	"reflect"
)

// Queries iterate entities in ascending id order. Optional component types passed
// to Map may be missing on an entity, in which case the callback receives nil for them.
// Returning false from the callback stops the iteration.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }
type Query4[A, B, C, D any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{ecs: cmd.app.ecs}
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	ids := identify(q.ecs, reflect.TypeFor[A]())
	q.ecs.each(ids, identifyOptionals(q.ecs, optionals...), func(eid EntityId, c []any) bool {
		return m(eid, as[A](c[0]))
	})
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	ids := identify(q.ecs, reflect.TypeFor[A](), reflect.TypeFor[B]())
	q.ecs.each(ids, identifyOptionals(q.ecs, optionals...), func(eid EntityId, c []any) bool {
		return m(eid, as[A](c[0]), as[B](c[1]))
	})
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	ids := identify(q.ecs, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
	q.ecs.each(ids, identifyOptionals(q.ecs, optionals...), func(eid EntityId, c []any) bool {
		return m(eid, as[A](c[0]), as[B](c[1]), as[C](c[2]))
	})
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	ids := identify(q.ecs, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]())
	q.ecs.each(ids, identifyOptionals(q.ecs, optionals...), func(eid EntityId, c []any) bool {
		return m(eid, as[A](c[0]), as[B](c[1]), as[C](c[2]), as[D](c[3]))
	})
}

// Get returns the component of type T on the entity, or nil.
func Get[T any](cmd *Commands, eid EntityId) *T {
	return as[T](cmd.app.ecs.component(eid, reflect.TypeFor[T]()))
}

func (ecs *Ecs) each(ids []componentId, opt set[componentId], m func(EntityId, []any) bool) {
	// Drive the iteration from the first required component.
	driver := -1
	for i, id := range ids {
		if _, optional := opt[id]; !optional {
			driver = i
			break
		}
	}
	if driver < 0 {
		return
	}

	comps := make([]any, len(ids))
	for _, eid := range ecs.sortedEntities(ids[driver]) {
		matched := true
		for i, id := range ids {
			c, ok := ecs.columns[id][eid]
			if !ok {
				if _, optional := opt[id]; !optional {
					matched = false
					break
				}
				c = nil
			}
			comps[i] = c
		}
		if !matched {
			continue
		}
		if !m(eid, comps) {
			return
		}
	}
}

func identify(ecs *Ecs, types ...reflect.Type) []componentId {
	ids := make([]componentId, len(types))
	for i, t := range types {
		ids[i] = ecs.getComponentId(t)
	}
	return ids
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId], len(components))
	for _, c := range components {
		res[ecs.getComponentId(componentType(c))] = struct{}{}
	}
	return res
}

func as[T any](c any) *T {
	if c == nil {
		return nil
	}
	return c.(*T)
}
