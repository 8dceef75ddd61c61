package di

import (
	"fmt"
	"reflect"
)

type (
	query interface {
		want(name Name) bool

		fmt.Stringer
	}

	queryByType struct {
		typ reflect.Type
	}

	queryByName struct {
		name Name
	}
)

func (q queryByType) want(n Name) bool {
	return matchType(q.typ, n.providedType)
}

func (q queryByType) String() string {
	return fmt.Sprintf("<type ~= %s>", q.typ.String())
}

func (q queryByName) want(n Name) bool {
	return n.name == q.name.name && matchType(q.name.providedType, n.providedType)
}

func (q queryByName) String() string {
	return fmt.Sprintf("<type ~= %s and name = %s>", q.name.providedType.String(), q.name.name)
}

func matchType(queryType, providedType reflect.Type) bool {
	if queryType == providedType {
		return true
	}
	return queryType.Kind() == reflect.Interface && providedType.Implements(queryType)
}
