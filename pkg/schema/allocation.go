package schema

import (
	"inet.af/netaddr"

	"github.com/geofeed/validator/pkg/field"
	"github.com/geofeed/validator/pkg/result"
)

// Allocation size messages.
const (
	MsgAllocationNegative  = "Allocation size must not be negative."
	MsgAllocationIPv4Max   = "IPv4 prefix length is 32 bits at maximum."
	MsgAllocationIPv6Max   = "IPv6 prefix length is 128 bits at maximum."
	MsgAllocationTooLarge  = "Default allocation size larger than network prefix length."
	MsgAllocationEqualSize = "Network prefix length is equal to default allocation size."
)

// AllocationSizeRule checks the allocation size of each record against its
// network. Records without a valid network or allocation size are skipped.
func AllocationSizeRule(b *result.Builder, _ string) {
	for _, rb := range b.Records() {
		network := rb.FieldByRole(field.RoleNetwork)
		alloc := rb.FieldByRole(field.RoleAllocationSize)
		if network == nil || alloc == nil {
			continue
		}
		p, ok := network.Value.(netaddr.IPPrefix)
		if !ok {
			continue
		}
		size, ok := alloc.Value.(int)
		if !ok {
			continue
		}

		if size < 0 {
			rb.AddFieldErrors(alloc.Field, MsgAllocationNegative)
		}
		if p.IP().Is4() && size > 32 {
			rb.AddFieldErrors(alloc.Field, MsgAllocationIPv4Max)
		}
		if p.IP().Is6() && size > 128 {
			rb.AddFieldErrors(alloc.Field, MsgAllocationIPv6Max)
		}

		bits := int(p.Bits())
		if size >= 0 && size < bits {
			rb.AddFieldErrors(alloc.Field, MsgAllocationTooLarge)
		} else if size == bits {
			rb.AddFieldWarnings(alloc.Field, MsgAllocationEqualSize)
		}
	}
}
