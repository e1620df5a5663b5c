package mq

type observer struct {
	key             string
	notify          Notify
	unSubscribeHook func() error
	errorHandler    func(error)
}

var _ Observer = (*observer)(nil)

// CreateObserver builds an Observer for MQTopic implementations.
func CreateObserver(key string, notify Notify, options ...ObserverOption) Observer {
	o := &observer{
		key:    key,
		notify: notify,
	}

	var observerOptionConfig ObserverOptionConfig
	for _, option := range options {
		option(&observerOptionConfig)
	}
	if observerOptionConfig.UnSubscribeHook != nil {
		o.unSubscribeHook = observerOptionConfig.UnSubscribeHook
	}
	if observerOptionConfig.ErrorHandler != nil {
		o.errorHandler = observerOptionConfig.ErrorHandler
	}

	return o
}

func (o *observer) GetKey() string {
	return o.key
}

func (o *observer) Notify(message []byte) error {
	return o.notify(message)
}

func (o *observer) UnSubscribeHook() {
	if o.unSubscribeHook != nil {
		_ = o.unSubscribeHook()
	}
}

func (o *observer) ErrorHandler(err error) {
	if o.errorHandler != nil {
		o.errorHandler(err)
	}
}
