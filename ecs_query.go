package starfield

import (
	"reflect"
)

type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]       { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] { return Query2[A, B]{ecs: cmd.app.ecs} }

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Map visits every entity holding A, in entity order, until m returns false.
func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	tA := typeOf[A]()
	storage := q.ecs.storages[tA]

	for _, entityId := range q.ecs.sortedIds(tA) {
		if !m(entityId, storage[entityId].(*A)) {
			return
		}
	}
}

// Map visits every entity holding both A and B, in entity order, until m returns false.
func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	tA, tB := typeOf[A](), typeOf[B]()
	storageA, storageB := q.ecs.storages[tA], q.ecs.storages[tB]

	for _, entityId := range q.ecs.sortedIds(tA) {
		b, ok := storageB[entityId]
		if !ok {
			continue
		}
		if !m(entityId, storageA[entityId].(*A), b.(*B)) {
			return
		}
	}
}

// Get returns entity's A, or nil.
func (q Query1[A]) Get(entityId EntityId) *A {
	if c, ok := q.ecs.storages[typeOf[A]()][entityId]; ok {
		return c.(*A)
	}
	return nil
}
