package thtp

import "context"

// Validatable is implemented by generated args/result structs whose schema
// declares a validate() method. thtp itself never requires this; it's
// opt-in via ValidationMiddleware.
type Validatable interface {
	Validate() error
}

// ValidationMiddleware validates args before calling next and the reply
// after next returns, whenever those values implement Validatable. It
// resolves the open question of which direction schema validation runs in
// by validating both directions when installed.
//
// On the server side a failing validation becomes a ServerValidationError.
// On the client side a failing validation on the outgoing args becomes a
// ClientValidationError; a failing validation on an incoming reply is
// reported as ServerValidationError, since it's the remote side's result
// that failed to validate.
func ValidationMiddleware(side string) Middleware {
	return func(next Caller) Caller {
		return func(ctx context.Context, rpcName string, args []interface{}, opts Options) (interface{}, error) {
			for _, v := range args {
				if validatable, ok := v.(Validatable); ok {
					if err := validatable.Validate(); err != nil {
						if side == "client" {
							return nil, Wrap(ClientValidationError, err)
						}
						return nil, Wrap(ServerValidationError, err)
					}
				}
			}

			reply, err := next(ctx, rpcName, args, opts)
			if err != nil {
				return reply, err
			}
			if validatable, ok := reply.(Validatable); ok {
				// Reply validation always fails as ServerValidationError regardless
				// of side: whether this stack is the server's own outgoing reply or
				// a client's incoming one, the value that failed to validate is the
				// server's result.
				if verr := validatable.Validate(); verr != nil {
					return nil, Wrap(ServerValidationError, verr)
				}
			}
			return reply, nil
		}
	}
}
