/*
Token contract is a NEP-17 compatible fungible token with a hard supply cap,
an owner-controlled pause switch and batched transfers.

The contract owner and the immutable supply cap are set at deployment and
never change. The owner can issue new tokens with Mint as long as total
supply stays within the cap, and can halt or resume all transfers with Pause
and Unpause. Any token holder can move funds with Transfer, send to many
recipients atomically with MultiSend, or destroy own tokens with Burn.

MultiSend validates the whole batch against the sender's balance before the
first transfer is made, so a batch either credits every recipient or nobody.

Contract notifications

Transfer notification. This is NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Mint notification. This notification is produced when new tokens are issued
by the contract owner.

	Mint:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Burn notification. This notification is produced when a holder destroys own
tokens.

	Burn:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package token
