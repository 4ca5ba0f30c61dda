package utils

import (
	"io"
	"sync"
)

const invalidFileDescriptorConstant = ^uintptr(0)

// FlushingWriter makes each status line visible immediately by flushing
// buffered destinations after every write.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps the provided writer and flushes it after each write when the writer supports flushing.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushableWriter, implementsFlush := flushingWriter.writer.(interface{ Flush() error }); implementsFlush {
		if flushError := flushableWriter.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}

// Fd exposes the descriptor of the wrapped writer so terminal detection sees
// through the wrapper. Writers without a descriptor report an invalid one.
func (flushingWriter *FlushingWriter) Fd() uintptr {
	if flushingWriter == nil {
		return invalidFileDescriptorConstant
	}
	if descriptorWriter, hasDescriptor := flushingWriter.writer.(interface{ Fd() uintptr }); hasDescriptor {
		return descriptorWriter.Fd()
	}
	return invalidFileDescriptorConstant
}
