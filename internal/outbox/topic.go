package outbox

const Topic = "events_to_forward"
