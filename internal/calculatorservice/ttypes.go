// Package calculatorservice is a hand-written stand-in for the Go code the
// Apache Thrift compiler would generate from a CalculatorService IDL file. It
// exists to exercise the THTP codec and dispatch tables end to end without
// requiring a real thrift-generated module; the shapes below follow the
// generator's own conventions (struct-per-type, Read/Write against
// thrift.TProtocol, positional field ids) closely enough that swapping this
// package for a real generated one is a drop-in change.
package calculatorservice

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Operation enumerates the four-function calculator ops.
type Operation int64

const (
	OperationAdd      Operation = 1
	OperationSubtract Operation = 2
	OperationMultiply Operation = 3
	OperationDivide   Operation = 4
)

func (o Operation) String() string {
	switch o {
	case OperationAdd:
		return "ADD"
	case OperationSubtract:
		return "SUBTRACT"
	case OperationMultiply:
		return "MULTIPLY"
	case OperationDivide:
		return "DIVIDE"
	}
	return "<UNKNOWN Operation>"
}

// DivideByZero is raised by do_operation when asked to divide by zero.
type DivideByZero struct {
	ErrorString string `thrift:"error_string,1" json:"error_string"`
	Zero        int32  `thrift:"zero,2" json:"zero"`
}

func NewDivideByZero() *DivideByZero {
	return &DivideByZero{}
}

func (e *DivideByZero) Error() string {
	return fmt.Sprintf("DivideByZero(error_string=%s, zero=%d)", e.ErrorString, e.Zero)
}

func (e *DivideByZero) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T read error: ", e), err)
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%T field %d read error: ", e, fieldID), err)
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if v, err := iprot.ReadString(ctx); err != nil {
				return err
			} else {
				e.ErrorString = v
			}
		case 2:
			if v, err := iprot.ReadI32(ctx); err != nil {
				return err
			} else {
				e.Zero = v
			}
		default:
			if err := iprot.Skip(ctx, fieldTypeID); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (e *DivideByZero) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "DivideByZero"); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T write struct begin error: ", e), err)
	}
	if err := oprot.WriteFieldBegin(ctx, "error_string", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, e.ErrorString); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "zero", thrift.I32, 2); err != nil {
		return err
	}
	if err := oprot.WriteI32(ctx, e.Zero); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

// OhNo is raised by set_variables on a bad request.
type OhNo struct {
	Message string `thrift:"message,1" json:"message"`
}

func NewOhNo() *OhNo {
	return &OhNo{}
}

func (e *OhNo) Error() string {
	return fmt.Sprintf("OhNo(message=%s)", e.Message)
}

func (e *OhNo) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T read error: ", e), err)
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%T field %d read error: ", e, fieldID), err)
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		if fieldID == 1 {
			if v, err := iprot.ReadString(ctx); err != nil {
				return err
			} else {
				e.Message = v
			}
		} else if err := iprot.Skip(ctx, fieldTypeID); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (e *OhNo) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "OhNo"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "message", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, e.Message); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

// Request is the argument struct set_variables accepts alongside its reason
// string.
type Request struct {
	Value string `thrift:"value,1" json:"value"`
}

func NewRequest() *Request {
	return &Request{}
}

func (r *Request) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		if fieldID == 1 {
			if v, err := iprot.ReadString(ctx); err != nil {
				return err
			} else {
				r.Value = v
			}
		} else if err := iprot.Skip(ctx, fieldTypeID); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (r *Request) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "Request"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "value", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, r.Value); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

// RetVal is set_variables's success type.
type RetVal struct {
	Value string `thrift:"value,1" json:"value"`
}

func NewRetVal() *RetVal {
	return &RetVal{}
}

func (r *RetVal) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldTypeID, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		if fieldID == 1 {
			if v, err := iprot.ReadString(ctx); err != nil {
				return err
			} else {
				r.Value = v
			}
		} else if err := iprot.Skip(ctx, fieldTypeID); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (r *RetVal) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "RetVal"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "value", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, r.Value); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}
