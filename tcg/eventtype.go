// Copyright 2024 CC API authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package tcg

import "fmt"

// EventType describes the type of an event in a measurement log.
type EventType uint32

// BIOS event types defined in the PC Client Platform Firmware Profile.
const (
	EventTypePrebootCert         EventType = 0x00
	EventTypePostCode            EventType = 0x01
	EventTypeNoAction            EventType = 0x03
	EventTypeSeparator           EventType = 0x04
	EventTypeAction              EventType = 0x05
	EventTypeEventTag            EventType = 0x06
	EventTypeSCRTMContents       EventType = 0x07
	EventTypeSCRTMVersion        EventType = 0x08
	EventTypeCPUMicrocode        EventType = 0x09
	EventTypePlatformConfigFlags EventType = 0x0A
	EventTypeTableOfDevices      EventType = 0x0B
	EventTypeCompactHash         EventType = 0x0C
	EventTypeIPL                 EventType = 0x0D
	EventTypeIPLPartitionData    EventType = 0x0E
	EventTypeNonhostCode         EventType = 0x0F
	EventTypeNonhostConfig       EventType = 0x10
	EventTypeNonhostInfo         EventType = 0x11
	EventTypeOmitBootDeviceEvent EventType = 0x12
)

// EFI event types defined in the PC Client Platform Firmware Profile.
const (
	EventTypeEFIEventBase               EventType = 0x80000000
	EventTypeEFIVariableDriverConfig    EventType = 0x80000001
	EventTypeEFIVariableBoot            EventType = 0x80000002
	EventTypeEFIBootServicesApplication EventType = 0x80000003
	EventTypeEFIBootServicesDriver      EventType = 0x80000004
	EventTypeEFIRuntimeServicesDriver   EventType = 0x80000005
	EventTypeEFIGPTEvent                EventType = 0x80000006
	EventTypeEFIAction                  EventType = 0x80000007
	EventTypeEFIPlatformFirmwareBlob    EventType = 0x80000008
	EventTypeEFIHandoffTables           EventType = 0x80000009
	EventTypeEFIPlatformFirmwareBlob2   EventType = 0x8000000A
	EventTypeEFIHandoffTables2          EventType = 0x8000000B
	EventTypeEFIHCRTMEvent              EventType = 0x80000010
	EventTypeEFIVariableAuthority       EventType = 0x800000E0
)

var eventTypeNames = map[EventType]string{
	EventTypePrebootCert:         "EV_PREBOOT_CERT",
	EventTypePostCode:            "EV_POST_CODE",
	EventTypeNoAction:            "EV_NO_ACTION",
	EventTypeSeparator:           "EV_SEPARATOR",
	EventTypeAction:              "EV_ACTION",
	EventTypeEventTag:            "EV_EVENT_TAG",
	EventTypeSCRTMContents:       "EV_S_CRTM_CONTENTS",
	EventTypeSCRTMVersion:        "EV_S_CRTM_VERSION",
	EventTypeCPUMicrocode:        "EV_CPU_MICROCODE",
	EventTypePlatformConfigFlags: "EV_PLATFORM_CONFIG_FLAGS",
	EventTypeTableOfDevices:      "EV_TABLE_OF_DEVICES",
	EventTypeCompactHash:         "EV_COMPACT_HASH",
	EventTypeIPL:                 "EV_IPL",
	EventTypeIPLPartitionData:    "EV_IPL_PARTITION_DATA",
	EventTypeNonhostCode:         "EV_NONHOST_CODE",
	EventTypeNonhostConfig:       "EV_NONHOST_CONFIG",
	EventTypeNonhostInfo:         "EV_NONHOST_INFO",
	EventTypeOmitBootDeviceEvent: "EV_OMIT_BOOT_DEVICE_EVENTS",

	EventTypeEFIEventBase:               "EV_EFI_EVENT_BASE",
	EventTypeEFIVariableDriverConfig:    "EV_EFI_VARIABLE_DRIVER_CONFIG",
	EventTypeEFIVariableBoot:            "EV_EFI_VARIABLE_BOOT",
	EventTypeEFIBootServicesApplication: "EV_EFI_BOOT_SERVICES_APPLICATION",
	EventTypeEFIBootServicesDriver:      "EV_EFI_BOOT_SERVICES_DRIVER",
	EventTypeEFIRuntimeServicesDriver:   "EV_EFI_RUNTIME_SERVICES_DRIVER",
	EventTypeEFIGPTEvent:                "EV_EFI_GPT_EVENT",
	EventTypeEFIAction:                  "EV_EFI_ACTION",
	EventTypeEFIPlatformFirmwareBlob:    "EV_EFI_PLATFORM_FIRMWARE_BLOB",
	EventTypeEFIHandoffTables:           "EV_EFI_HANDOFF_TABLES",
	EventTypeEFIPlatformFirmwareBlob2:   "EV_EFI_PLATFORM_FIRMWARE_BLOB2",
	EventTypeEFIHandoffTables2:          "EV_EFI_HANDOFF_TABLES2",
	EventTypeEFIHCRTMEvent:              "EV_EFI_HCRTM_EVENT",
	EventTypeEFIVariableAuthority:       "EV_EFI_VARIABLE_AUTHORITY",
}

// KnownName returns the PFP name for the event type, if it has one.
func (e EventType) KnownName() (string, bool) {
	name, ok := eventTypeNames[e]
	return name, ok
}

// String returns the PFP name for the event type, or its hex value when the
// type is not recognized.
func (e EventType) String() string {
	if name, ok := eventTypeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EventType(0x%08x)", uint32(e))
}
