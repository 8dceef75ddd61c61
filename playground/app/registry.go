package main

import (
	"github.com/a-peyrard/mcpsample/di"
	"github.com/a-peyrard/mcpsample/playground/app/greeting"
	"github.com/a-peyrard/mcpsample/playground/app/settings"
	"github.com/a-peyrard/mcpsample/sample"
	"github.com/rs/zerolog"
)

// RegisterComponents adds every playground provider to the resolver.
func RegisterComponents(
	resolver *di.Resolver,
	cfg *settings.Settings,
	logger *zerolog.Logger,
	target *greeting.Target,
) {
	resolver.
		MustRegister(di.ToStaticProvider(cfg), di.Named("playground.settings")).
		MustRegister(di.ToStaticProvider(logger), di.Named("playground.logger")).
		MustRegister(di.ToStaticProvider(target), di.Named("greeting.target")).
		MustRegister(sample.DefaultConfig, di.Named("sample.config")).
		MustRegister(greeting.NewGreetingRunner, di.Named("greeting.runner"))
}
