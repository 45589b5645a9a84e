package ecs

import "reflect"

// typeOf resolves the reflect.Type for a component type parameter.
// Components are stored by their concrete (usually pointer) type.
func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// GetComponent returns the entity's component of type T.
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, ok := em.components[id]
	if !ok {
		return zero, false
	}
	comp, ok := compMap[typeOf[T]()]
	if !ok {
		return zero, false
	}
	return comp.(T), true
}

// HasComponent reports whether the entity carries a component of type T.
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	compMap, ok := em.components[id]
	if !ok {
		return false
	}
	_, ok = compMap[typeOf[T]()]
	return ok
}

// GetEntitiesWith returns every entity carrying a component of type T.
// Result order is unspecified.
func GetEntitiesWith[T any](em *EntityManager) []EntityID {
	t := typeOf[T]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[t]; ok {
			result = append(result, id)
		}
	}
	return result
}

// GetEntitiesWith2 returns every entity carrying components of both types.
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	t1, t2 := typeOf[T1](), typeOf[T2]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[t1]; !ok {
			continue
		}
		if _, ok := compMap[t2]; !ok {
			continue
		}
		result = append(result, id)
	}
	return result
}

// GetEntitiesWith3 returns every entity carrying components of all three types.
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	t1, t2, t3 := typeOf[T1](), typeOf[T2](), typeOf[T3]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[t1]; !ok {
			continue
		}
		if _, ok := compMap[t2]; !ok {
			continue
		}
		if _, ok := compMap[t3]; !ok {
			continue
		}
		result = append(result, id)
	}
	return result
}
