package starfield

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64

type set[T comparable] = map[T]struct{}

// Ecs stores components per type, keyed by entity. Each stored value is a
// pointer to a private copy so queries can mutate in place.
type Ecs struct {
	entities map[EntityId]set[reflect.Type]
	storages map[reflect.Type]map[EntityId]any

	idGeneratorLock sync.Mutex
	entityIdCounter EntityId
}

func MakeEcs() Ecs {
	return Ecs{
		entities:        make(map[EntityId]set[reflect.Type]),
		storages:        make(map[reflect.Type]map[EntityId]any),
		entityIdCounter: EntityId(0),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	entityId := ecs.nextEntityId()
	return ecs.insertEntity(entityId, components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	if _, ok := ecs.entities[entityId]; !ok {
		ecs.entities[entityId] = make(set[reflect.Type])
	}
	ecs.addComponents(entityId, components...)
	return entityId
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	types, ok := ecs.entities[entityId]
	if !ok {
		panic(fmt.Sprintf("entity %d does not exist", entityId))
	}
	for _, component := range components {
		componentType, ptr := copyComponent(component)
		storage, ok := ecs.storages[componentType]
		if !ok {
			storage = make(map[EntityId]any)
			ecs.storages[componentType] = storage
		}
		storage[entityId] = ptr
		types[componentType] = struct{}{}
	}
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	types, ok := ecs.entities[entityId]
	if !ok {
		return
	}
	for componentType := range types {
		delete(ecs.storages[componentType], entityId)
	}
	delete(ecs.entities, entityId)
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entities[entityId]
	return ok
}

func (ecs *Ecs) entityCount() int {
	return len(ecs.entities)
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idGeneratorLock.Lock()
	defer ecs.idGeneratorLock.Unlock()

	id := ecs.entityIdCounter
	ecs.entityIdCounter += 1

	return id
}

// sortedIds returns the entities holding componentType in ascending order,
// so queries visit entities deterministically.
func (ecs *Ecs) sortedIds(componentType reflect.Type) []EntityId {
	return sortedKeys(ecs.storages[componentType])
}

func sortedKeys[V any](m map[EntityId]V) []EntityId {
	ids := make([]EntityId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// copyComponent accepts a struct or a pointer to a struct and returns the
// struct type plus a pointer to a fresh copy.
func copyComponent(component any) (reflect.Type, any) {
	value := reflect.ValueOf(component)
	componentType := value.Type()
	if componentType.Kind() == reflect.Pointer {
		componentType = componentType.Elem()
		value = value.Elem()
	}
	if componentType.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected Component to be a struct or a pointer to a struct, got %s", componentType.Kind()))
	}

	ptr := reflect.New(componentType)
	ptr.Elem().Set(value)
	return componentType, ptr.Interface()
}
