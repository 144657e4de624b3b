package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

type target struct {
	buffer []byte
}

func (t *target) Written() int {
	return len(t.buffer)
}

// Marshals the given object into the this target. Panics, which may be raised by the marshaling of child objects,
// are recovered and returned as errors. To propagate (i.e., not catch) the panic use target.Write(...) instead.
func (t *target) Marshal(object Marshaler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic during marshaling: %v", r)
		}
	}()

	t.Write(object)
	return nil
}

// Write the given object into this target. This is just an alias for object.MarshalTo(target). The given object must
// not be nil. Panics raised during marshaling are NOT recovered and must be handled by the caller. To recover from
// panics use target.Marshal(object) instead. However, at the top-level codec.Marshal(...) function panics are always
// recovered.
func (t *target) Write(object Marshaler) {
	if object == nil {
		panic("Write called with nil object")
	}
	object.MarshalTo(t)
}

// WriteInt writes a 32-bit signed integer in BigEndian byte order, it panics if value does not fit.
func (t *target) WriteInt(value int) {
	if value > math.MaxInt32 || value < math.MinInt32 {
		panic(fmt.Sprintf("WriteInt called with value %d, which is out of range of int32", value))
	}
	t.buffer = binary.BigEndian.AppendUint32(t.buffer, uint32(value))
}

// WriteUint64 writes an unsigned 64-bit integer in BigEndian byte order.
func (t *target) WriteUint64(value uint64) {
	t.buffer = binary.BigEndian.AppendUint64(t.buffer, value)
}

func (t *target) WriteBytes(value []byte) {
	t.buffer = append(t.buffer, value...)
}
