package model

// Decorator enriches a form model after the mode-specific field list has been
// resolved and before it is rendered.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// ApplyDecorators runs each decorator in order and stops at the first error.
// Nil entries are skipped.
func ApplyDecorators(form *FormModel, decorators ...Decorator) error {
	if form == nil {
		return nil
	}
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
