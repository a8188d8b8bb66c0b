/*
Package pve is the gateway to the Proxmox VE REST API.

The client speaks the /api2/json flavor of the API with token
authentication and exposes exactly the three operations the rest of
dnset needs: reading a resource, creating an ipset member, and
deleting one.

# Shape normalization

Proxmox responses are loosely shaped: the {"data": ...} envelope can
hold a list of objects, a single object, null, or (on proxy errors)
something that is not JSON at all. Value absorbs this at the boundary —
Value.List always yields a uniform []Map, and anything unreadable
degrades to an empty result. Callers therefore never branch on
response shape, and a broken read is indistinguishable from an absent
resource, which is exactly the tolerance the reconciler wants.

# Error posture

Write failures (CreateMember, DeleteMember) are returned to the caller
for logging and counting; nothing in this package retries, panics, or
distinguishes fatal from transient. The reconciliation loop owns that
policy.

# Usage

	client, err := pve.NewClient(pve.Config{
		Endpoint:    "https://pve1:8006",
		TokenID:     "root@pam!dnset",
		TokenSecret: secret,
	})
	v, _ := client.Get(ctx, "/cluster/firewall/ipset")
	for _, set := range v.List() {
		fmt.Println(set.Str("name"), set.Str("comment"))
	}
*/
package pve
