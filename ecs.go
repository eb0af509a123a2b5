package tweakview

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type componentId uint32
type set[T comparable] = map[T]struct{}

// Ecs stores one component of each type per entity. Components are kept as
// pointers so queries hand out stable references that systems mutate in place.
type Ecs struct {
	entities set[EntityId]
	columns  map[componentId]map[EntityId]any

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId

	componentIdCounterLock sync.Mutex
	componentIdCounter     componentId
	componentTypeIdMap     map[reflect.Type]componentId
	componentIdTypeMap     map[componentId]reflect.Type
}

func MakeEcs() Ecs {
	return Ecs{
		entities:           make(set[EntityId]),
		columns:            make(map[componentId]map[EntityId]any),
		entityIdCounter:    EntityId(0),
		componentIdCounter: componentId(0),
		componentTypeIdMap: make(map[reflect.Type]componentId),
		componentIdTypeMap: make(map[componentId]reflect.Type),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	ecs.entities[entityId] = struct{}{}
	for _, component := range components {
		ecs.writeComponent(entityId, component)
	}
	return entityId
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	if _, ok := ecs.entities[entityId]; !ok {
		return
	}
	for _, column := range ecs.columns {
		delete(column, entityId)
	}
	delete(ecs.entities, entityId)
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	if _, ok := ecs.entities[entityId]; !ok {
		return
	}
	for _, component := range components {
		ecs.writeComponent(entityId, component)
	}
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	for _, c := range components {
		id := ecs.getComponentId(componentType(c))
		if column, ok := ecs.columns[id]; ok {
			delete(column, entityId)
		}
	}
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entities[entityId]
	return ok
}

// writeComponent stores a copy of the component (or the pointer itself when a
// pointer is passed) in the column of its type.
func (ecs *Ecs) writeComponent(entityId EntityId, component any) {
	cType := reflect.TypeOf(component)
	ptr := reflect.ValueOf(component)
	if cType.Kind() == reflect.Pointer {
		cType = cType.Elem()
	} else {
		copied := reflect.New(cType)
		copied.Elem().Set(ptr)
		ptr = copied
	}
	if cType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected Component to be a struct or a pointer to a struct, got %s", cType.Kind()))
	}

	id := ecs.getComponentId(cType)
	column, ok := ecs.columns[id]
	if !ok {
		column = make(map[EntityId]any)
		ecs.columns[id] = column
	}
	column[entityId] = ptr.Interface()
}

// component returns the stored pointer for the given type, or nil.
func (ecs *Ecs) component(entityId EntityId, cType reflect.Type) any {
	id := ecs.getComponentId(cType)
	if column, ok := ecs.columns[id]; ok {
		return column[entityId]
	}
	return nil
}

func (ecs *Ecs) allComponents(entityId EntityId) []any {
	ids := make([]componentId, 0, len(ecs.columns))
	for id, column := range ecs.columns {
		if _, ok := column[entityId]; ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	res := make([]any, 0, len(ids))
	for _, id := range ids {
		res = append(res, reflect.ValueOf(ecs.columns[id][entityId]).Elem().Interface())
	}
	return res
}

// sortedEntities returns the entities holding the given component, in ascending id order.
func (ecs *Ecs) sortedEntities(id componentId) []EntityId {
	column := ecs.columns[id]
	res := make([]EntityId, 0, len(column))
	for eid := range column {
		res = append(res, eid)
	}
	slices.Sort(res)
	return res
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idGeneratorLock.Lock()
	defer ecs.idGeneratorLock.Unlock()

	// 0 is reserved as "no entity"
	ecs.entityIdCounter += 1
	return ecs.entityIdCounter
}

func (ecs *Ecs) getComponentId(cType reflect.Type) componentId {
	ecs.componentIdCounterLock.Lock()
	defer ecs.componentIdCounterLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[cType]; ok {
		return id
	}
	id := ecs.componentIdCounter
	ecs.componentIdCounter += 1

	ecs.componentTypeIdMap[cType] = id
	ecs.componentIdTypeMap[id] = cType
	return id
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
