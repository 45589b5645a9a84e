// Package ecs provides the minimal entity/component store the simulation
// systems are built on. Spawners are entities; particles are plain data
// inside a spawner-owned store component.
package ecs

import "reflect"

// EntityID uniquely identifies an entity. 0 is reserved as invalid.
type EntityID uint64

// EntityManager owns all entities and their components.
//
// Destruction is deferred: DestroyEntity only marks an entity, and
// RemoveMarkedEntities drops it at a defined point in the tick. Systems
// iterating query results therefore never observe a component map that
// disappears mid-pass.
type EntityManager struct {
	nextID            uint64
	components        map[EntityID]map[reflect.Type]any
	entitiesToDestroy []EntityID
}

// NewEntityManager creates an empty EntityManager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity allocates a new entity and returns its ID.
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity marks an entity for removal at the next
// RemoveMarkedEntities call.
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// Exists reports whether the entity is currently alive.
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// AddComponent attaches a component to an entity, replacing any existing
// component of the same type.
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, ok := em.components[id]; ok {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent detaches the component of the given type, if present.
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, ok := em.components[id]; ok {
		delete(compMap, componentType)
	}
}

// RemoveMarkedEntities drops every entity marked by DestroyEntity.
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// EntityCount returns the number of live entities.
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}
