package calculatorservice

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/reddit/thtp.go"
)

// Handler is the application interface a CalculatorService implementation
// satisfies. thtp.Server never references this type by name; RPCDescriptor's
// generated Invoke closures below are the only code that type-asserts a
// registered handler object against it.
type Handler interface {
	DoOperation(ctx context.Context, op Operation, operandOne, operandTwo int32) (int32, error)
	SetVariables(ctx context.Context, reason string, req *Request) (*RetVal, error)
	TestInternalError(ctx context.Context) error
}

// --- do_operation ---------------------------------------------------------

type doOperationArgs struct {
	Op         Operation `thrift:"op,1" json:"op"`
	OperandOne int32     `thrift:"operand_one,2" json:"operand_one"`
	OperandTwo int32     `thrift:"operand_two,3" json:"operand_two"`
}

func newDoOperationArgs() *doOperationArgs { return &doOperationArgs{} }

func (a *doOperationArgs) FromPositional(values []interface{}) error {
	if len(values) != 3 {
		return fmt.Errorf("do_operation: expected 3 arguments, got %d", len(values))
	}
	op, ok := values[0].(Operation)
	if !ok {
		return fmt.Errorf("do_operation: argument 1 (op) must be Operation, got %T", values[0])
	}
	one, ok := values[1].(int32)
	if !ok {
		return fmt.Errorf("do_operation: argument 2 (operand_one) must be int32, got %T", values[1])
	}
	two, ok := values[2].(int32)
	if !ok {
		return fmt.Errorf("do_operation: argument 3 (operand_two) must be int32, got %T", values[2])
	}
	a.Op, a.OperandOne, a.OperandTwo = op, one, two
	return nil
}

func (a *doOperationArgs) ToPositional() []interface{} {
	return []interface{}{a.Op, a.OperandOne, a.OperandTwo}
}

func (a *doOperationArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			a.Op = Operation(v)
		case 2:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			a.OperandOne = v
		case 3:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			a.OperandTwo = v
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

func (a *doOperationArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "do_operation_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "op", thrift.I32, 1); err != nil {
		return err
	}
	if err := oprot.WriteI32(ctx, int32(a.Op)); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "operand_one", thrift.I32, 2); err != nil {
		return err
	}
	if err := oprot.WriteI32(ctx, a.OperandOne); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "operand_two", thrift.I32, 3); err != nil {
		return err
	}
	if err := oprot.WriteI32(ctx, a.OperandTwo); err != nil {
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

var _ thtp.Args = (*doOperationArgs)(nil)

type doOperationResult struct {
	Success      *int32        `thrift:"success,0" json:"success,omitempty"`
	DvzException *DivideByZero `thrift:"dvz_exception,1" json:"dvz_exception,omitempty"`
}

func newDoOperationResult() *doOperationResult { return &doOperationResult{} }

func (r *doOperationResult) HasSuccessField() bool { return true }

func (r *doOperationResult) SetField(v interface{}) bool {
	switch val := v.(type) {
	case int32:
		r.Success = &val
		return true
	case *DivideByZero:
		r.DvzException = val
		return true
	default:
		return false
	}
}

func (r *doOperationResult) Decoded() (value interface{}, exception error, isSet bool) {
	if r.DvzException != nil {
		return nil, r.DvzException, true
	}
	if r.Success != nil {
		return *r.Success, nil, true
	}
	return nil, nil, false
}

func (r *doOperationResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		switch fieldID {
		case 0:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			r.Success = &v
		case 1:
			r.DvzException = NewDivideByZero()
			if err := r.DvzException.Read(ctx, iprot); err != nil {
				return err
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

func (r *doOperationResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "do_operation_result"); err != nil {
		return err
	}
	if r.Success != nil {
		if err := oprot.WriteFieldBegin(ctx, "success", thrift.I32, 0); err != nil {
			return err
		}
		if err := oprot.WriteI32(ctx, *r.Success); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if r.DvzException != nil {
		if err := oprot.WriteFieldBegin(ctx, "dvz_exception", thrift.STRUCT, 1); err != nil {
			return err
		}
		if err := r.DvzException.Write(ctx, oprot); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

var _ thtp.Result = (*doOperationResult)(nil)

// --- set_variables ---------------------------------------------------------

type setVariablesArgs struct {
	Reason string   `thrift:"reason,1" json:"reason"`
	Req    *Request `thrift:"req,2" json:"req"`
}

func newSetVariablesArgs() *setVariablesArgs { return &setVariablesArgs{} }

func (a *setVariablesArgs) FromPositional(values []interface{}) error {
	if len(values) != 2 {
		return fmt.Errorf("set_variables: expected 2 arguments, got %d", len(values))
	}
	reason, ok := values[0].(string)
	if !ok {
		return fmt.Errorf("set_variables: argument 1 (reason) must be string, got %T", values[0])
	}
	req, ok := values[1].(*Request)
	if !ok {
		return fmt.Errorf("set_variables: argument 2 (req) must be *Request, got %T", values[1])
	}
	a.Reason, a.Req = reason, req
	return nil
}

func (a *setVariablesArgs) ToPositional() []interface{} {
	return []interface{}{a.Reason, a.Req}
}

func (a *setVariablesArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		switch fieldID {
		case 1:
			v, err := iprot.ReadString(ctx)
			if err != nil {
				return err
			}
			a.Reason = v
		case 2:
			a.Req = NewRequest()
			if err := a.Req.Read(ctx, iprot); err != nil {
				return err
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

func (a *setVariablesArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "set_variables_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "reason", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(ctx, a.Reason); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin(ctx, "req", thrift.STRUCT, 2); err != nil {
		return err
	}
	if err := a.Req.Write(ctx, oprot); err != nil {
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

var _ thtp.Args = (*setVariablesArgs)(nil)

type setVariablesResult struct {
	Success       *RetVal `thrift:"success,0" json:"success,omitempty"`
	OhnoException *OhNo   `thrift:"ohno_exception,1" json:"ohno_exception,omitempty"`
}

func newSetVariablesResult() *setVariablesResult { return &setVariablesResult{} }

func (r *setVariablesResult) HasSuccessField() bool { return true }

func (r *setVariablesResult) SetField(v interface{}) bool {
	switch val := v.(type) {
	case *RetVal:
		r.Success = val
		return true
	case *OhNo:
		r.OhnoException = val
		return true
	default:
		return false
	}
}

func (r *setVariablesResult) Decoded() (value interface{}, exception error, isSet bool) {
	if r.OhnoException != nil {
		return nil, r.OhnoException, true
	}
	if r.Success != nil {
		return r.Success, nil, true
	}
	return nil, nil, false
}

func (r *setVariablesResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
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
		switch fieldID {
		case 0:
			r.Success = NewRetVal()
			if err := r.Success.Read(ctx, iprot); err != nil {
				return err
			}
		case 1:
			r.OhnoException = NewOhNo()
			if err := r.OhnoException.Read(ctx, iprot); err != nil {
				return err
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

func (r *setVariablesResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "set_variables_result"); err != nil {
		return err
	}
	if r.Success != nil {
		if err := oprot.WriteFieldBegin(ctx, "success", thrift.STRUCT, 0); err != nil {
			return err
		}
		if err := r.Success.Write(ctx, oprot); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if r.OhnoException != nil {
		if err := oprot.WriteFieldBegin(ctx, "ohno_exception", thrift.STRUCT, 1); err != nil {
			return err
		}
		if err := r.OhnoException.Write(ctx, oprot); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

var _ thtp.Result = (*setVariablesResult)(nil)

// --- test_internal_error ----------------------------------------------------

type testInternalErrorArgs struct{}

func newTestInternalErrorArgs() *testInternalErrorArgs { return &testInternalErrorArgs{} }

func (a *testInternalErrorArgs) FromPositional(values []interface{}) error {
	if len(values) != 0 {
		return fmt.Errorf("test_internal_error: expected 0 arguments, got %d", len(values))
	}
	return nil
}

func (a *testInternalErrorArgs) ToPositional() []interface{} { return nil }

func (a *testInternalErrorArgs) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldTypeID, _, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		if err := iprot.Skip(ctx, fieldTypeID); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (a *testInternalErrorArgs) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "test_internal_error_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

var _ thtp.Args = (*testInternalErrorArgs)(nil)

// testInternalErrorResult declares no success field: test_internal_error
// returns void.
type testInternalErrorResult struct{}

func newTestInternalErrorResult() *testInternalErrorResult { return &testInternalErrorResult{} }

func (r *testInternalErrorResult) HasSuccessField() bool { return false }

func (r *testInternalErrorResult) SetField(v interface{}) bool { return false }

func (r *testInternalErrorResult) Decoded() (value interface{}, exception error, isSet bool) {
	return nil, nil, false
}

func (r *testInternalErrorResult) Read(ctx context.Context, iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldTypeID, _, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldTypeID == thrift.STOP {
			break
		}
		if err := iprot.Skip(ctx, fieldTypeID); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (r *testInternalErrorResult) Write(ctx context.Context, oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin(ctx, "test_internal_error_result"); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(ctx); err != nil {
		return err
	}
	return oprot.WriteStructEnd(ctx)
}

var _ thtp.Result = (*testInternalErrorResult)(nil)

// NewDescriptor builds the thtp.ServiceDescriptor for
// "thtp.test.calculator_service", wiring each RPC's Invoke closure to type-
// assert a registered handler object against Handler.
func NewDescriptor() *thtp.ServiceDescriptor {
	return thtp.NewServiceDescriptor(
		"thtp.test.calculator_service",
		thtp.RPCDescriptor{
			Name:      "do_operation",
			NewArgs:   func() thtp.Args { return newDoOperationArgs() },
			NewResult: func() thtp.Result { return newDoOperationResult() },
			Invoke: func(ctx context.Context, handler interface{}, args []interface{}) (interface{}, error) {
				h, ok := handler.(Handler)
				if !ok {
					return nil, thtp.ErrHandlerNotApplicable
				}
				a := args[0].(Operation)
				b := args[1].(int32)
				c := args[2].(int32)
				return h.DoOperation(ctx, a, b, c)
			},
		},
		thtp.RPCDescriptor{
			Name:      "set_variables",
			NewArgs:   func() thtp.Args { return newSetVariablesArgs() },
			NewResult: func() thtp.Result { return newSetVariablesResult() },
			Invoke: func(ctx context.Context, handler interface{}, args []interface{}) (interface{}, error) {
				h, ok := handler.(Handler)
				if !ok {
					return nil, thtp.ErrHandlerNotApplicable
				}
				reason := args[0].(string)
				req := args[1].(*Request)
				return h.SetVariables(ctx, reason, req)
			},
		},
		thtp.RPCDescriptor{
			Name:      "test_internal_error",
			NewArgs:   func() thtp.Args { return newTestInternalErrorArgs() },
			NewResult: func() thtp.Result { return newTestInternalErrorResult() },
			Invoke: func(ctx context.Context, handler interface{}, args []interface{}) (interface{}, error) {
				h, ok := handler.(Handler)
				if !ok {
					return nil, thtp.ErrHandlerNotApplicable
				}
				return nil, h.TestInternalError(ctx)
			},
		},
	)
}
