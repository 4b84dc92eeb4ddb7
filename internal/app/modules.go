package app

import (
	"github.com/vk/ifacereg/modules/envcheck"
	"github.com/vk/ifacereg/modules/httpprobe"
	"github.com/vk/ifacereg/modules/printer"
	"github.com/vk/ifacereg/modules/socketprobe"
	"github.com/vk/ifacereg/registry"
)

// coreModules is the definitive list of modules compiled into the binary.
var coreModules = []registry.Module{
	&envcheck.Module{},
	&httpprobe.Module{},
	&socketprobe.Module{},
	&printer.Module{},
}
