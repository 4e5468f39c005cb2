package internal

import "context"

// PaymentService runs the transaction pipeline in a fixed sequence:
// validate customer, validate payment, charge, notify, log. The first
// failure aborts the remaining steps and propagates unchanged.
type PaymentService struct {
	customerValidator *CustomerValidator
	paymentValidator  *PaymentDataValidator
	processor         ChargeProcessor
	notifier          *Notifier
	log               TransactionLog
}

func NewPaymentService(processor ChargeProcessor, notifier *Notifier, log TransactionLog) *PaymentService {
	return &PaymentService{
		customerValidator: NewCustomerValidator(),
		paymentValidator:  NewPaymentDataValidator(),
		processor:         processor,
		notifier:          notifier,
		log:               log,
	}
}

func (s *PaymentService) ProcessTransaction(ctx context.Context, customer CustomerData, payment PaymentData) (Charge, error) {
	if err := s.customerValidator.Validate(customer); err != nil {
		return Charge{}, err
	}

	if err := s.paymentValidator.Validate(payment); err != nil {
		return Charge{}, err
	}

	charge, err := s.processor.ProcessTransaction(ctx, customer, payment)
	if err != nil {
		return Charge{}, err
	}

	// The charge now exists at the provider. There is no rollback: a
	// failure below leaves the charge in place and is reported as-is.
	if err := s.notifier.SendConfirmation(ctx, customer); err != nil {
		return Charge{}, err
	}

	if err := s.log.Log(ctx, customer, payment, charge); err != nil {
		return Charge{}, err
	}

	return charge, nil
}
